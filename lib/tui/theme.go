// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/filehash/lib/hashalg"
	"github.com/bureau-foundation/filehash/lib/hashengine"
)

// Theme is the color palette for result output. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Verdict colors.
	Verified    lipgloss.Color
	NotMatching lipgloss.Color
	Weak        lipgloss.Color
	Cancelled   lipgloss.Color

	// Algorithm names: secure algorithms in Secure, the rest in
	// Insecure.
	Secure   lipgloss.Color
	Insecure lipgloss.Color
}

// VerdictColor returns the color for a verification verdict.
func (theme Theme) VerdictColor(verdict hashengine.Verdict) lipgloss.Color {
	switch verdict {
	case hashengine.VerdictVerified:
		return theme.Verified
	case hashengine.VerdictNotMatching, hashengine.VerdictError:
		return theme.NotMatching
	case hashengine.VerdictNoStrongHashes:
		return theme.Weak
	case hashengine.VerdictCancelled:
		return theme.Cancelled
	default:
		return theme.FaintText
	}
}

// AlgorithmColor returns the color an algorithm name is printed in.
func (theme Theme) AlgorithmColor(algorithm hashalg.Algorithm) lipgloss.Color {
	if hashalg.IsSecure(algorithm) {
		return theme.Secure
	}
	return theme.Insecure
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	Verified:    lipgloss.Color("114"), // green
	NotMatching: lipgloss.Color("196"), // bright red
	Weak:        lipgloss.Color("220"), // yellow/amber
	Cancelled:   lipgloss.Color("245"), // gray

	Secure:   lipgloss.Color("75"),  // blue
	Insecure: lipgloss.Color("208"), // orange
}
