// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat models rich text messages exchanged between the server
// and its senders.
//
// A message is a tree of components. Each component carries optional
// formatting (a named color plus bold, italic, underline, strikethrough
// and obfuscate flags) and zero or more children appended after its own
// text. Children inherit the formatting of their parent unless they
// override it, matching how game clients interpret component trees.
//
// # Key Types
//
//   - Message: a single component and its children
//   - Color: one of the sixteen named chat colors
//
// # Usage
//
// Build messages fluently and render them for the audience at hand:
//
//	msg := chat.Text("Teleported ").
//		Append(chat.Text("Steve").Color(chat.Aqua)).
//		AppendText(" to spawn")
//
//	fmt.Println(msg.Plain()) // log files
//	fmt.Println(msg.ANSI())  // interactive console
//
// Legacy section-sign strings convert in both directions:
//
//	msg := chat.ParseLegacy("§cServer closed")
//	s := msg.Legacy()
//
// JSON marshaling produces the component shape clients consume, so a
// *Message can be embedded directly in outbound packets.
package chat
