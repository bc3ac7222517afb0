// zxrun - reference frontend for the zx48core emulation package.
//
// Grounded on the teacher's cmd-line layout (a thin main wiring flags to
// a Run function) and on spf13/cobra's RunE convention seen elsewhere in
// the retrieved pack. The frontend itself is split across GUI (ebiten),
// headless (raw-terminal) and audio (oto) files; main.go only parses
// flags, loads the ROM, and hands the machine to the chosen mode (the
// headless mode supervises its goroutines with golang.org/x/sync/errgroup).

package main

import (
	"fmt"
	"os"

	"github.com/ebitengine/hideconsole"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/intuitionamiga/zx48core"
)

var (
	romPath    string
	scale      int
	headless   bool
	snapshotTo string
	muteAudio  bool
)

var rootCmd = &cobra.Command{
	Use:   "zxrun",
	Short: "ZX Spectrum 48K emulator",
	Long: `zxrun runs a cycle-accurate ZX Spectrum 48K core.

By default it opens an ebiten window and plays the beeper through oto.
Pass --headless for a raw-terminal run with no window, useful for CI
or over SSH; combine with --snapshot to write a single upscaled PNG
frame instead of running interactively.`,
	RunE: runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&romPath, "rom", "r", "", "path to a 16K ZX Spectrum 48K ROM image (required)")
	rootCmd.Flags().IntVarP(&scale, "scale", "s", 2, "window scale factor")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "run without a GUI window")
	rootCmd.Flags().StringVar(&snapshotTo, "snapshot", "", "headless only: render one frame to this PNG path and exit")
	rootCmd.Flags().BoolVar(&muteAudio, "mute", false, "disable beeper audio output")
	_ = rootCmd.MarkFlagRequired("rom")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	machine, err := spectrum.NewMachine(rom)
	if err != nil {
		return fmt.Errorf("initializing machine: %w", err)
	}

	if headless {
		return runHeadless(machine, snapshotTo, scale)
	}
	return runGUI(machine, scale, muteAudio)
}

// runGUI hides the console window (a no-op on platforms without one),
// starts the audio player unless muted, and hands control to ebiten's
// blocking run loop. ebiten owns the main thread here, so there is
// nothing for a goroutine group to supervise until the loop returns.
func runGUI(machine *spectrum.Machine, scale int, mute bool) error {
	_ = hideconsole.Hide()

	var player *beeperPlayer
	if !mute {
		p, err := newBeeperPlayer(machine)
		if err != nil {
			fmt.Fprintf(os.Stderr, "zxrun: audio disabled: %v\n", err)
		} else {
			p.Start()
			player = p
		}
	}

	frontend := newGUIFrontend(machine, scale)
	ebiten.SetWindowSize(machine.ULA.Width*scale, machine.ULA.Height*scale)
	ebiten.SetWindowTitle("ZX Spectrum 48K")

	runErr := ebiten.RunGame(frontend)

	if player != nil {
		_ = player.Close()
	}
	return runErr
}
