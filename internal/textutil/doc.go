// Package textutil provides filename helpers for episode output.
//
// Names are normalized to Unicode NFC before unsafe characters are replaced,
// so a show name typed on different keyboards maps to the same file.
package textutil
