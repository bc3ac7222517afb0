// headless.go - raw-terminal frontend, no GUI window
//
// Grounded on the teacher's terminal_host.go: stdin is put into raw mode
// with golang.org/x/term so keystrokes arrive unbuffered and unechoed,
// then translated into ZX Spectrum matrix presses. Two goroutines run
// concurrently - one draining stdin, one pacing frames at 50Hz - and
// golang.org/x/sync/errgroup supervises both so a read error on either
// stops the whole run cleanly instead of leaking the other goroutine.

package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/intuitionamiga/zx48core"
)

const framePeriod = time.Second / 50

// runHeadless drives the machine with no video window. With snapshotPath
// set it renders exactly one frame, upscales it, writes a PNG, and
// returns; otherwise it runs until interrupted, echoing nothing and
// feeding raw stdin bytes to the emulated keyboard.
func runHeadless(machine *spectrum.Machine, snapshotPath string, scale int) error {
	if snapshotPath != "" {
		return writeSnapshot(machine, snapshotPath, scale)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw terminal mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	if err := syscall.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("setting stdin nonblocking: %w", err)
	}
	defer syscall.SetNonblock(fd, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return readKeyboard(ctx, fd, machine) })
	g.Go(func() error { return runFrameLoop(ctx, machine) })

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// readKeyboard polls stdin in short bursts so it notices ctx cancellation
// promptly rather than blocking forever on a Read that will never return
// on an idle terminal.
func readKeyboard(ctx context.Context, fd int, machine *spectrum.Machine) error {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := syscall.Read(fd, buf)
		if n > 0 {
			routeHostKey(machine, buf[0])
			continue
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || n == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return err
		}
	}
}

// routeHostKey presses the matching matrix key for one frame; there is
// no host key-up event in raw single-byte reads, so the key is released
// again on the following tick rather than held.
func routeHostKey(machine *spectrum.Machine, b byte) {
	if b == 0x7F {
		b = 0x08
	}
	if b == '\r' {
		b = '\n'
	}
	keys, ok := asciiToKeys(b)
	if !ok {
		return
	}
	for _, k := range keys {
		machine.ULA.PressKey(k.row, k.mask)
		time.AfterFunc(framePeriod, func() { machine.ULA.ReleaseKey(k.row, k.mask) })
	}
}

func runFrameLoop(ctx context.Context, machine *spectrum.Machine) error {
	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			machine.RunFrame()
		}
	}
}

// writeSnapshot renders one frame, upscales it with nearest-neighbour
// sampling (the authentic way to magnify a Spectrum's blocky output),
// and writes it as a PNG.
func writeSnapshot(machine *spectrum.Machine, path string, scale int) error {
	if scale < 1 {
		scale = 1
	}
	pix := machine.RunFrame()

	src := image.NewRGBA(image.Rect(0, 0, machine.ULA.Width, machine.ULA.Height))
	copy(src.Pix, pix)

	dst := image.NewRGBA(image.Rect(0, 0, machine.ULA.Width*scale, machine.ULA.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, dst); err != nil {
		return fmt.Errorf("encoding snapshot PNG: %w", err)
	}
	return nil
}
