package common

import (
	"flag"

	"github.com/google/uuid"
)

var Version = "v0.3.1"
var SystemName = "Sharebox"

var (
	Port         = flag.Int("port", 3000, "the listening port")
	PrintVersion = flag.Bool("version", false, "print version and exit")
	LogDir       = flag.String("log-dir", "", "specify the log directory")
)

// Secrets default to random values so a fresh install is never running with a
// known key. Persistent deployments should pin them via config or env.
var (
	SessionSecret    = uuid.New().String()
	JWTSecret        = uuid.New().String()
	JWTRefreshSecret = uuid.New().String()
)

var (
	SQLitePath = "data/sharebox.db"
	UploadPath = "upload"

	// ServerAddress is the externally visible base URL of this backend, used
	// when building public share links.
	ServerAddress = "http://localhost:3000"
	// FrontendBaseURL is where password-reset links point to.
	FrontendBaseURL = "http://localhost:3000"

	// CORSAllowOrigins is a comma-separated list of origins allowed to make
	// credentialed cross-origin requests. Empty means only FrontendBaseURL.
	CORSAllowOrigins = ""
)

var (
	SMTPServer  = ""
	SMTPPort    = 587
	SMTPAccount = ""
	SMTPToken   = ""
	SMTPFrom    = ""
)

// Storage limits. MaxFileSize caps a single upload, MaxTotalStorage caps the
// sum of one user's stored files.
var (
	MaxFileSize     int64 = 100 * 1024 * 1024  // 100 MiB
	MaxTotalStorage int64 = 1024 * 1024 * 1024 // 1 GiB
)

var (
	AccessTokenValidMinutes = 60
	RefreshTokenValidHours  = 24 * 7
	ResetTokenValidMinutes  = 30
)

var EnableGzip = false

const (
	UserStatusEnabled  = 1
	UserStatusDisabled = 2
)

var (
	GlobalAPIRateLimitNum      = 120
	GlobalAPIRateLimitDuration int64 = 60

	CriticalRateLimitNum      = 10
	CriticalRateLimitDuration int64 = 300
)
