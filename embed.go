package seomaster

import "embed"

// EmbeddedAssets contains the site's own static assets: nav.js and site.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
