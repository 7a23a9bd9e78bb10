package config

import "strings"

// WebConfig contains the configuration for the web server.
type WebConfig struct {
	// RequestLogging enables logging of all HTTP requests.
	RequestLogging bool `yaml:"request_logging"`
	// ExternalUrl is the URL where a client can access the expense portal.
	ExternalUrl string `yaml:"external_url"`
	// ListeningAddress is the address and port for the web server.
	ListeningAddress string `yaml:"listening_address"`
	// CertFile is the path to the TLS certificate file.
	CertFile string `yaml:"cert_file"`
	// KeyFile is the path to the TLS certificate key file.
	KeyFile string `yaml:"key_file"`
	// ExposeHostInfo adds a X-Served-By header with the hostname to all responses.
	ExposeHostInfo bool `yaml:"expose_host_info"`
}

func (c *WebConfig) Sanitize() {
	c.ExternalUrl = strings.TrimRight(c.ExternalUrl, "/")
}

// UploadConfig contains the configuration for the receipt file storage.
type UploadConfig struct {
	// BasePath is the directory where uploaded files are stored.
	BasePath string `yaml:"base_path"`
	// MaxSizeMB is the maximum allowed file size in megabytes.
	MaxSizeMB int `yaml:"max_size_mb"`
	// AllowedTypes lists the accepted mime types.
	AllowedTypes []string `yaml:"allowed_types"`
}
