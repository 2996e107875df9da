// Package trace loads recorded line-event traces and replays them through a
// profiling session with deterministic timestamps.
//
// A trace is a YAML document listing (file, line, at) events in the order the
// host runtime observed them, with "at" in microseconds from an arbitrary
// origin. [Player] acts as both the session's host and its clock, so a replay
// produces the identical report on every run:
//
//	tr, err := trace.LoadFile("run.yaml")
//	player := trace.NewPlayer(tr)
//	session := lineprof.New(player, lineprof.WithClock(player))
//	report, err := session.Profile(lineprof.File("app.rb"), player.Run)
package trace
