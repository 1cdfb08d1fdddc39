package atomicsite

import "embed"

// EmbeddedAssets holds the static files served under /public.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
