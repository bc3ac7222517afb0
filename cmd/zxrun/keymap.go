// keymap.go - host key -> Spectrum matrix (row, mask) mapping
//
// Grounded on spec.md §4.3's matrix layout: row r is selected when
// address-line bit 8+r is low. {shift,z,x,c,v}, {a,s,d,f,g}, {q,w,e,r,t},
// {1,2,3,4,5}, {0,9,8,7,6}, {p,o,i,u,y}, {enter,l,k,j,h}, {space,symshift,m,n,b}.

package main

import "github.com/hajimehoshi/ebiten/v2"

type matrixKey struct {
	row  int
	mask byte
}

var ebitenKeyMatrix = map[ebiten.Key]matrixKey{
	ebiten.KeyShiftLeft: {0, 0x01}, ebiten.KeyShiftRight: {0, 0x01},
	ebiten.KeyZ: {0, 0x02}, ebiten.KeyX: {0, 0x04}, ebiten.KeyC: {0, 0x08}, ebiten.KeyV: {0, 0x10},

	ebiten.KeyA: {1, 0x01}, ebiten.KeyS: {1, 0x02}, ebiten.KeyD: {1, 0x04}, ebiten.KeyF: {1, 0x08}, ebiten.KeyG: {1, 0x10},

	ebiten.KeyQ: {2, 0x01}, ebiten.KeyW: {2, 0x02}, ebiten.KeyE: {2, 0x04}, ebiten.KeyR: {2, 0x08}, ebiten.KeyT: {2, 0x10},

	ebiten.Key1: {3, 0x01}, ebiten.Key2: {3, 0x02}, ebiten.Key3: {3, 0x04}, ebiten.Key4: {3, 0x08}, ebiten.Key5: {3, 0x10},

	ebiten.Key0: {4, 0x01}, ebiten.Key9: {4, 0x02}, ebiten.Key8: {4, 0x04}, ebiten.Key7: {4, 0x08}, ebiten.Key6: {4, 0x10},

	ebiten.KeyP: {5, 0x01}, ebiten.KeyO: {5, 0x02}, ebiten.KeyI: {5, 0x04}, ebiten.KeyU: {5, 0x08}, ebiten.KeyY: {5, 0x10},

	ebiten.KeyEnter: {6, 0x01}, ebiten.KeyL: {6, 0x02}, ebiten.KeyK: {6, 0x04}, ebiten.KeyJ: {6, 0x08}, ebiten.KeyH: {6, 0x10},

	ebiten.KeySpace: {7, 0x01}, ebiten.KeyControlLeft: {7, 0x02},
	ebiten.KeyM: {7, 0x04}, ebiten.KeyN: {7, 0x08}, ebiten.KeyB: {7, 0x10},
}

// asciiToKeys maps a printable character to the (possibly shifted)
// sequence of matrix keys a real keyboard would chord to produce it, for
// the clipboard-paste-as-keystrokes feature. Unmapped characters are
// dropped rather than guessed at.
func asciiToKeys(ch byte) ([]matrixKey, bool) {
	shift := matrixKey{0, 0x01}
	switch {
	case ch >= 'a' && ch <= 'z':
		k, ok := ebitenKeyMatrix[ebiten.Key(ebiten.KeyA)+ebiten.Key(ch-'a')]
		if !ok {
			return nil, false
		}
		return []matrixKey{k}, true
	case ch >= 'A' && ch <= 'Z':
		k, ok := ebitenKeyMatrix[ebiten.Key(ebiten.KeyA)+ebiten.Key(ch-'A')]
		if !ok {
			return nil, false
		}
		return []matrixKey{shift, k}, true
	case ch >= '0' && ch <= '9':
		k, ok := ebitenKeyMatrix[ebiten.Key(ebiten.Key0)+ebiten.Key(ch-'0')]
		if !ok {
			return nil, false
		}
		return []matrixKey{k}, true
	case ch == ' ':
		return []matrixKey{{7, 0x01}}, true
	case ch == '\n':
		return []matrixKey{{6, 0x01}}, true
	default:
		return nil, false
	}
}
