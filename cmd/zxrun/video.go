// video.go - ebiten video/input frontend
//
// Grounded on the teacher's video_backend_ebiten.go: a Game that owns an
// *ebiten.Image sized to the machine's framebuffer, redraws it every
// Update, polls ebiten's key state directly into PressKey/ReleaseKey
// (rather than queueing discrete events, since the Spectrum matrix is
// itself just a level-sensitive bitmask), and offers clipboard-paste via
// golang.design/x/clipboard on Ctrl+Shift+V.

package main

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/intuitionamiga/zx48core"
)

type guiFrontend struct {
	machine *spectrum.Machine
	scale   int

	window *ebiten.Image

	mu          sync.Mutex
	framebuffer []byte

	clipboardOnce sync.Once
	clipboardOK   bool
	pasteQueue    [][]matrixKey
}

func newGUIFrontend(m *spectrum.Machine, scale int) *guiFrontend {
	return &guiFrontend{
		machine: m,
		scale:   scale,
		window:  ebiten.NewImage(m.ULA.Width, m.ULA.Height),
	}
}

func (g *guiFrontend) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	for key, mk := range ebitenKeyMatrix {
		if ebiten.IsKeyPressed(key) {
			g.machine.ULA.PressKey(mk.row, mk.mask)
		} else {
			g.machine.ULA.ReleaseKey(mk.row, mk.mask)
		}
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.queuePaste()
	}
	g.drainPasteQueue()

	g.mu.Lock()
	g.framebuffer = g.machine.RunFrame()
	g.mu.Unlock()
	return nil
}

// queuePaste reads the system clipboard once lazily initialized and
// expands it into a chord queue drained one key-chord per frame, so a
// pasted string arrives at the emulated keyboard the way typing would.
func (g *guiFrontend) queuePaste() {
	g.clipboardOnce.Do(func() {
		g.clipboardOK = clipboard.Init() == nil
	})
	if !g.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	for _, b := range data {
		if keys, ok := asciiToKeys(b); ok {
			g.pasteQueue = append(g.pasteQueue, keys)
		}
	}
}

func (g *guiFrontend) drainPasteQueue() {
	if len(g.pasteQueue) == 0 {
		return
	}
	chord := g.pasteQueue[0]
	g.pasteQueue = g.pasteQueue[1:]
	for _, mk := range chord {
		g.machine.ULA.PressKey(mk.row, mk.mask)
	}
}

func (g *guiFrontend) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	if g.framebuffer != nil {
		g.window.WritePixels(g.framebuffer)
	}
	g.mu.Unlock()
	screen.DrawImage(g.window, nil)
}

func (g *guiFrontend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.machine.ULA.Width, g.machine.ULA.Height
}
