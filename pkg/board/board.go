// Copyright (c) Moses Schmiedel 2023. All rights reserved.

// Package board provides a synchronous byte I/O interface to the
// downloader firmware on the CPU board. The board is connected over a
// USB serial adapter; opening the port resets the microcontroller, so
// Open sleeps long enough for the firmware to come back up before the
// first byte is exchanged.
//
// All I/O is blocking with a read timeout, done from a single
// goroutine. The serial port object is not threadsafe, and an earlier
// channel-based design tripped the race detector inside the port
// itself, so everything stays on one goroutine.

package board

import (
	"fmt"
	"log"
	"syscall"
	"time"

	"go.bug.st/serial"
)

const resetDelay = 3 * time.Second

var debug bool = false

// Board is an open serial connection to the downloader firmware.
type Board struct {
	port serial.Port
}

// NoResponseError reports that the board sent nothing within the
// timeout.
type NoResponseError time.Duration

func (nre NoResponseError) Error() string {
	return fmt.Sprintf("read from board: no response after %v", time.Duration(nre))
}

// Open connects to the board on the named serial device.
func Open(deviceName string, baudRate int) (*Board, error) {
	var board Board
	var err error

	mode := &serial.Mode{BaudRate: baudRate, DataBits: 8, Parity: serial.NoParity, StopBits: serial.OneStopBit}
	board.port, err = serial.Open(deviceName, mode)
	if err != nil {
		return nil, err
	}

	// The delay matters: right after the reset the firmware consumes
	// the first few bytes checking whether this is a programmer
	// trying to flash it.
	log.Println("serial port is open - delaying for board reset")
	time.Sleep(resetDelay)
	return &board, nil
}

// ReadFor reads the board until a byte is received or a timeout occurs.
func (b *Board) ReadFor(timeout time.Duration) (byte, error) {
	return b.readByte(timeout)
}

// Write writes a byte to the board.
func (b *Board) Write(value byte) error {
	return b.writeByte(value)
}

// Close closes the connection to the board.
func (b *Board) Close() error {
	return b.closeSerialPort()
}

// Read a byte. Errors at this level are serious and mean the protocol
// has broken down or is about to.
func (b *Board) readByte(readTimeout time.Duration) (byte, error) {
	buf := make([]byte, 1, 1)
	var n int
	var err error

	// The for-loop is -solely- to handle EINTR, which occurs constantly
	// as a result of Golang's Goroutine-level context switching mechanism.
	b.port.SetReadTimeout(readTimeout)
	for {
		n, err = b.port.Read(buf)
		// Break loop unless EINTR.
		if !isRetryableSyscallError(err) {
			break
		}
		if n != 0 {
			panic("bytes returned despite EINTR")
		}
	}
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, NoResponseError(readTimeout)
	}
	if debug {
		log.Printf("readByte: return 0x%X\n", buf[0])
	}
	return buf[0], nil
}

// Write a byte. Errors at this level are serious and mean the protocol
// has broken down or is about to.
func (b *Board) writeByte(toWrite byte) error {
	if debug {
		log.Printf("writeByte: write 0x%X\n", toWrite)
	}
	buf := []byte{toWrite}
	var n int
	var err error

	// The for-loop is -solely- to handle EINTR, which occurs constantly
	// as a result of Golang's Goroutine-level context switching mechanism.
	for {
		n, err = b.port.Write(buf)
		// Drop out of the loop on success
		// or error, but not on EINTR.
		if !isRetryableSyscallError(err) {
			break
		}
		if n != 0 {
			panic("bytes written despite EINTR")
		}
	}
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("write consumed 0 bytes")
	}
	return nil
}

func (b *Board) closeSerialPort() error {
	if b.port == nil {
		return fmt.Errorf("internal error: close(): port not open")
	}
	if err := b.port.Close(); err != nil {
		log.Printf("close serial port: %s", err)
		return err
	}
	log.Println("serial port closed")
	b.port = nil
	return nil
}

func isRetryableSyscallError(err error) bool {
	const eIntr = 4
	if errno, ok := err.(syscall.Errno); ok {
		return errno == eIntr
	}
	return false
}
