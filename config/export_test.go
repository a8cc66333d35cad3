package config

// ExpandPath exports expandPath for testing.
var ExpandPath = expandPath //nolint:gochecknoglobals // test export
