package fitstack

import (
	"fmt"
	"os"

	"github.com/astrogo/fitsio"

	"uvotsl/internal/grid"
)

// Structural cards are owned by the FITS writer; copying them from the
// source extension would clash with the ones fitsio maintains itself.
var reservedCards = map[string]bool{
	"SIMPLE":   true,
	"XTENSION": true,
	"BITPIX":   true,
	"NAXIS":    true,
	"NAXIS1":   true,
	"NAXIS2":   true,
	"EXTEND":   true,
	"PCOUNT":   true,
	"GCOUNT":   true,
	"BSCALE":   true,
	"BZERO":    true,
	"END":      true,
}

// WriteCorrected assembles the corrected output stack at dstPath: the source
// stack's primary HDU is mirrored as a placeholder, and each corrected array
// becomes one image extension carrying the source extension's header cards.
// Any existing file at dstPath is overwritten.
func WriteCorrected(srcPath, dstPath string, corrected []*grid.Grid) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source stack: %w", err)
	}
	defer srcFile.Close()

	src, err := fitsio.Open(srcFile)
	if err != nil {
		return fmt.Errorf("parse source stack %s: %w", srcPath, err)
	}
	defer src.Close()

	hdus := src.HDUs()
	if len(hdus)-1 != len(corrected) {
		return fmt.Errorf("stack %s has %d extensions but %d corrected images were supplied",
			srcPath, len(hdus)-1, len(corrected))
	}

	outFile, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create output stack: %w", err)
	}
	defer outFile.Close()

	out, err := fitsio.Create(outFile)
	if err != nil {
		return fmt.Errorf("initialize output stack %s: %w", dstPath, err)
	}
	defer out.Close()

	if err := out.Write(hdus[0]); err != nil {
		return fmt.Errorf("write primary placeholder: %w", err)
	}

	for i, g := range corrected {
		if err := writeExtension(out, hdus[i+1].Header(), g); err != nil {
			return fmt.Errorf("write extension %d: %w", i+1, err)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("finalize output stack %s: %w", dstPath, err)
	}
	return outFile.Close()
}

func writeExtension(out *fitsio.File, srcHdr *fitsio.Header, g *grid.Grid) error {
	img := fitsio.NewImage(-64, []int{g.Width(), g.Height()})
	defer img.Close()

	cards := make([]fitsio.Card, 0, len(srcHdr.Keys()))
	for _, key := range srcHdr.Keys() {
		if reservedCards[key] {
			continue
		}
		if card := srcHdr.Get(key); card != nil {
			cards = append(cards, *card)
		}
	}
	if len(cards) > 0 {
		if err := img.Header().Append(cards...); err != nil {
			return fmt.Errorf("copy header cards: %w", err)
		}
	}

	values := g.Values()
	if err := img.Write(&values); err != nil {
		return fmt.Errorf("write pixels: %w", err)
	}
	return out.Write(img)
}
