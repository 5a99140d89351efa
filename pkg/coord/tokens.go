package coord

import (
	"fmt"
	"strings"

	"github.com/patchboard/atlas/pkg/errors"
)

// Space tags which coordinate system the point and rectangle registers hold.
// The byte values are the single-letter codes used in stored snapshots.
type Space byte

const (
	World  Space = 'w'
	Canvas Space = 'c'
)

// Valid reports whether s is World or Canvas.
func (s Space) Valid() bool { return s == World || s == Canvas }

func (s Space) String() string {
	switch s {
	case World:
		return "World"
	case Canvas:
		return "Canvas"
	default:
		return fmt.Sprintf("Space(%q)", byte(s))
	}
}

// ParseSpace accepts "World"/"Canvas" in any case and the short codes "w"/"c".
func ParseSpace(s string) (Space, error) {
	switch {
	case s == "w" || strings.EqualFold(s, "World"):
		return World, nil
	case s == "c" || strings.EqualFold(s, "Canvas"):
		return Canvas, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidTransition, "unknown space %q", s)
}

// Source names what LoadRect or LoadPoint reads from.
type Source string

const (
	SrcAttachment  Source = "attachment"
	SrcEvent       Source = "event"
	SrcCenter      Source = "center"
	SrcCenterSouth Source = "center-south"
	SrcNW          Source = "nw"
	SrcNE          Source = "ne"
	SrcSE          Source = "se"
	SrcSW          Source = "sw"
	SrcLabel       Source = "label"
)

// Dest names what StoreRect or StorePoint writes to.
type Dest string

const (
	DstAttachment Dest = "attachment"
	DstCenter     Dest = "center"
	DstNW         Dest = "nw"
	DstNE         Dest = "ne"
	DstSE         Dest = "se"
	DstSW         Dest = "sw"
	DstCam        Dest = "cam"
)

var sources = map[string]Source{
	string(SrcAttachment):  SrcAttachment,
	string(SrcEvent):       SrcEvent,
	string(SrcCenter):      SrcCenter,
	string(SrcCenterSouth): SrcCenterSouth,
	string(SrcNW):          SrcNW,
	string(SrcNE):          SrcNE,
	string(SrcSE):          SrcSE,
	string(SrcSW):          SrcSW,
	string(SrcLabel):       SrcLabel,
}

var dests = map[string]Dest{
	string(DstAttachment): DstAttachment,
	string(DstCenter):     DstCenter,
	string(DstNW):         DstNW,
	string(DstNE):         DstNE,
	string(DstSE):         DstSE,
	string(DstSW):         DstSW,
	string(DstCam):        DstCam,
}

// ParseSource maps a token onto a Source. Tokens are case sensitive.
func ParseSource(s string) (Source, error) {
	if src, ok := sources[s]; ok {
		return src, nil
	}
	return "", errors.New(errors.ErrCodeUnknownSource, "unknown source %q", s)
}

// ParseDest maps a token onto a Dest. Tokens are case sensitive.
func ParseDest(s string) (Dest, error) {
	if dst, ok := dests[s]; ok {
		return dst, nil
	}
	return "", errors.New(errors.ErrCodeUnknownDestination, "unknown destination %q", s)
}
