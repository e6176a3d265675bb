package web

import (
	"embed"
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS
)

// localStaticDir is served instead of the embedded files in dev mode.
const localStaticDir = "./internal/web/static"
