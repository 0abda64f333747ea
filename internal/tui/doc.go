// Package tui is the terminal front end: a Bubble Tea model that renders
// session snapshots and turns typed commands into game intents.
package tui
