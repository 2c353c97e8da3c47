// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PALETTE
// =============================================================================

// All colors use AdaptiveColor for automatic light/dark detection.
var (
	cyan       = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}
	amber      = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	surfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}
	overlay    = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}
	textMuted  = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
)

// =============================================================================
// STYLES
// =============================================================================

var (
	// headerStyle renders the top status bar.
	headerStyle = lipgloss.NewStyle().
			Background(surfaceDim).
			Padding(0, 1)

	// brandStyle renders the server name inside the header.
	brandStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true)

	// statStyle renders world/player/uptime figures inside the header.
	statStyle = lipgloss.NewStyle().
			Foreground(amber)

	// sepStyle renders the " | " dividers inside the header.
	sepStyle = lipgloss.NewStyle().
			Foreground(overlay)

	// echoStyle renders the local echo of a submitted command.
	echoStyle = lipgloss.NewStyle().
			Foreground(textMuted)

	// hintStyle renders the bottom hint line and completion candidates.
	hintStyle = lipgloss.NewStyle().
			Foreground(textMuted)
)
