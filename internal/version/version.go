package version

// Value is stamped at build time via -ldflags "-X recruitdesk/internal/version.Value=v0.x.y".
var Value = "dev"
