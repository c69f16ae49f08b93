// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/filehash/lib/hashalg"
	"github.com/bureau-foundation/filehash/lib/hashengine"
)

// Printer writes result lines to one output. The lipgloss renderer
// detects the writer's color profile: a terminal gets colors, anything
// else gets plain ASCII.
type Printer struct {
	out      io.Writer
	theme    Theme
	renderer *lipgloss.Renderer
}

// NewPrinter returns a Printer for out.
func NewPrinter(out io.Writer, theme Theme) *Printer {
	return &Printer{out: out, theme: theme, renderer: lipgloss.NewRenderer(out)}
}

func (p *Printer) style(color lipgloss.Color) lipgloss.Style {
	return p.renderer.NewStyle().Foreground(color)
}

// Digest prints one computed digest in the form
// "<algorithm>:<base64>  <name>", the algorithm colored by strength.
func (p *Printer) Digest(name string, digest hashalg.Digest) error {
	encoded := hashalg.FormatDigest(digest)
	algorithm := digest.Algorithm.String()
	_, err := fmt.Fprintf(p.out, "%s%s  %s\n",
		p.style(p.theme.AlgorithmColor(digest.Algorithm)).Render(algorithm),
		encoded[len(algorithm):],
		name,
	)
	return err
}

// Verification prints the verdict for one file:
//
//	photo.jpg: verified (blake2b-512)
//	photo.jpg: not_matching (sha-256)
//	photo.jpg: no_strong_hashes
//	photo.jpg: error: reading stream at offset 0: ...
func (p *Printer) Verification(name string, verification hashengine.Verification) error {
	verdict := p.style(p.theme.VerdictColor(verification.Verdict)).Bold(true).Render(verification.Verdict.String())

	var detail string
	switch verification.Verdict {
	case hashengine.VerdictVerified, hashengine.VerdictNotMatching:
		detail = " " + p.style(p.theme.FaintText).Render("("+verification.Candidate.Algorithm.String()+")")
	case hashengine.VerdictError:
		detail = ": " + verification.Err.Error()
	}

	_, err := fmt.Fprintf(p.out, "%s: %s%s\n", name, verdict, detail)
	return err
}
