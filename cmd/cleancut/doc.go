// Package main hosts the cleancut CLI entrypoint and command graph.
//
// Commands load a subtitle file, run it through the analysis pipeline and
// surface the result: stats and filtered SRT exports (analyze), position
// queries (query), mute range exports (mute), and a paced playback simulation
// (play). Supporting commands inspect the lexicon, manage the persisted
// analysis store, and scaffold configuration.
//
// Keep this package lean: behavior lives in the internal packages, and commands
// only resolve flags against configuration and render output.
package main
