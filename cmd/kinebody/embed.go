package main

import "embed"

//go:embed configs
var embeddedConfigs embed.FS
