// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/osc.go
// Summary: OSC (title, default colors) and DCS (DECRQSS) string commands.
// Usage: Called by the Parser when an OSC or DCS string is terminated.

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/encoding/charmap"
)

// handleOSC runs an operating system command. term is the terminator the
// child used (BEL or ST) and is echoed on query replies.
func (v *VTerm) handleOSC(sequence string, term string) {
	commandPart, payload, hasPayload := strings.Cut(sequence, ";")
	command, err := strconv.Atoi(commandPart)
	if err != nil {
		v.logDebug("Parser: Malformed OSC %q", sequence)
		return
	}
	if !hasPayload {
		return
	}

	switch command {
	case 0:
		text := v.decodeString(payload)
		v.setIconName(text)
		v.setTitle(text)
	case 1:
		v.setIconName(v.decodeString(payload))
	case 2:
		v.setTitle(v.decodeString(payload))
	case 10, 11:
		v.handleOSCColor(command, payload, term)
	default:
		v.logDebug("Parser: Unhandled OSC %d", command)
	}
}

// decodeString converts an OSC payload to text. In 8-bit mode the bytes
// are ISO-8859-1.
func (v *VTerm) decodeString(payload string) string {
	if v.utf8 {
		return strings.ToValidUTF8(payload, "\uFFFD")
	}
	s, err := charmap.ISO8859_1.NewDecoder().String(payload)
	if err != nil {
		return payload
	}
	return s
}

func (v *VTerm) setTitle(title string) {
	if title == v.title {
		return
	}
	v.title = title
	if v.TitleChanged != nil {
		v.TitleChanged(title)
	}
}

func (v *VTerm) setIconName(name string) {
	if name == v.iconName {
		return
	}
	v.iconName = name
	if v.IconNameChanged != nil {
		v.IconNameChanged(name)
	}
}

// handleOSCColor sets or queries the default foreground (10) or
// background (11).
func (v *VTerm) handleOSCColor(command int, payload, term string) {
	if payload == "?" {
		c := v.defaults.FG
		if command == 11 {
			c = v.defaults.BG
		}
		v.writeOutput([]byte(fmt.Sprintf("\x1b]%d;%s%s", command, FormatOSCColor(c), term)))
		return
	}
	c, ok := ParseOSCColor(payload)
	if !ok {
		v.logDebug("Parser: Bad OSC %d color %q", command, payload)
		return
	}
	c.Default = true
	if command == 10 {
		v.defaults.FG = c
		if v.DefaultFgChanged != nil {
			v.DefaultFgChanged(c)
		}
	} else {
		v.defaults.BG = c
		if v.DefaultBgChanged != nil {
			v.DefaultBgChanged(c)
		}
	}
	v.damageAll()
}

// ParseOSCColor parses the X11 forms "rgb:r/g/b" (1-4 hex digits per
// channel) and "#rgb" / "#rrggbb".
func ParseOSCColor(payload string) (RGB, bool) {
	if strings.HasPrefix(payload, "rgb:") {
		parts := strings.Split(strings.TrimPrefix(payload, "rgb:"), "/")
		if len(parts) != 3 {
			return RGB{}, false
		}
		var ch [3]float64
		for i, part := range parts {
			if len(part) == 0 || len(part) > 4 {
				return RGB{}, false
			}
			n, err := strconv.ParseUint(part, 16, 16)
			if err != nil {
				return RGB{}, false
			}
			// Scale by the channel's own width, e.g. "f" and "ffff" are both full.
			ch[i] = float64(n) / float64(uint64(1)<<(4*len(part))-1)
		}
		r, g, b := colorful.Color{R: ch[0], G: ch[1], B: ch[2]}.RGB255()
		return RGB{R: r, G: g, B: b}, true
	}
	if strings.HasPrefix(payload, "#") {
		c, err := colorful.Hex(payload)
		if err != nil {
			return RGB{}, false
		}
		r, g, b := c.RGB255()
		return RGB{R: r, G: g, B: b}, true
	}
	return RGB{}, false
}

// FormatOSCColor renders c in the 16-bit-per-channel form xterm replies with.
func FormatOSCColor(c RGB) string {
	return fmt.Sprintf("rgb:%04x/%04x/%04x", uint16(c.R)*257, uint16(c.G)*257, uint16(c.B)*257)
}

// handleDCS answers DECRQSS ("$q"); every other DCS is discarded.
func (v *VTerm) handleDCS(payload string, term string) {
	setting, ok := strings.CutPrefix(payload, "$q")
	if !ok {
		v.logDebug("Parser: Ignoring DCS %q", payload)
		return
	}
	var reply string
	switch setting {
	case "m":
		reply = v.pen.sgrString() + "m"
	case "r":
		reply = fmt.Sprintf("%d;%dr", v.marginTop+1, v.marginBottom+1)
	case " q":
		reply = fmt.Sprintf("%d q", v.cursorStyleParam())
	default:
		v.writeOutput([]byte("\x1bP0$r" + term))
		return
	}
	v.writeOutput([]byte("\x1bP1$r" + reply + term))
}

// cursorStyleParam is the DECSCUSR value for the current cursor.
func (v *VTerm) cursorStyleParam() int {
	ps := 1
	switch v.cursorShape {
	case CursorUnderline:
		ps = 3
	case CursorBar:
		ps = 5
	}
	if !v.cursorBlink {
		ps++
	}
	return ps
}
