// Copyright (c) Moses Schmiedel 2023. All rights reserved.

package board

// Downloader protocol. Every record the host sends is one command
// byte, then any payload, and the firmware answers each record with
// the command's ack byte. An instruction word travels as three bytes,
// low byte first, the top nibble of the 20-bit word last.

import (
	"fmt"
	"time"
)

const (
	CmdSync  = 0xA5
	AckSync  = 0x5A
	CmdWord  = 0x57
	AckWord  = 0x75
	CmdRun   = 0x52
	AckRun   = 0x25
)

const responseDelay = 250 * time.Millisecond

// Link is the byte transport the downloader runs over. *Board
// satisfies it; tests substitute their own.
type Link interface {
	Write(value byte) error
	ReadFor(timeout time.Duration) (byte, error)
}

// Download streams an assembled word stream to the board and starts
// it. progress, if non-nil, is called after every acknowledged word.
func Download(link Link, words []uint32, progress func(done, total int)) error {
	if err := command(link, CmdSync, AckSync, nil); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	for i, w := range words {
		if err := command(link, CmdWord, AckWord, wordBytes(w)); err != nil {
			return fmt.Errorf("word %d: %w", i, err)
		}
		if progress != nil {
			progress(i+1, len(words))
		}
	}
	if err := command(link, CmdRun, AckRun, nil); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// wordBytes splits one 20-bit word into its three wire bytes.
func wordBytes(w uint32) []byte {
	return []byte{
		byte(w),
		byte(w >> 8),
		byte(w >> 16 & 0x0F),
	}
}

func command(link Link, cmd, ack byte, payload []byte) error {
	if err := link.Write(cmd); err != nil {
		return err
	}
	for _, b := range payload {
		if err := link.Write(b); err != nil {
			return err
		}
	}
	got, err := link.ReadFor(responseDelay)
	if err != nil {
		return err
	}
	if got != ack {
		return fmt.Errorf("expected ack 0x%02X, got 0x%02X", ack, got)
	}
	return nil
}
