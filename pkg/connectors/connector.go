package connectors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedScheme = errors.New("unsupported connector scheme")

// Connector gives read access to a remote tree: a maven repository, a meta
// API or a directory holding version descriptors.
type Connector interface {
	NewFromURI(uri string) Connector

	GetPath() string
	GetURI() string
	GetScheme() string // file, http, https, sftp

	Connect() error
	IsConnected() bool
	Close() error

	// ReadFile reads the file from the remote path and unmarshals it into the destination
	ReadFile(remotePath string, dest any) error
	ReadFileBytes(remotePath string) ([]byte, error)
	// DownloadFile copies the remote file to localPath, creating parent directories.
	DownloadFile(remotePath string, localPath string) error

	HasFile(remotePath string) bool
}

var CONNECTORS = map[string]Connector{
	SFTP_SCHEME:  new(SFTPConnector),
	FILE_SCHEME:  new(FileConnector),
	HTTP_SCHEME:  new(HttpConnector),
	HTTPS_SCHEME: new(HttpConnector),
}

func FindConnectorFromURI(uri string) Connector {
	for k, connector := range CONNECTORS {
		if strings.HasPrefix(uri, k+"://") {
			return connector.NewFromURI(uri)
		}
	}

	return nil
}

// Open resolves uri to a connector and connects it.
func Open(uri string) (Connector, error) {
	c := FindConnectorFromURI(uri)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, uri)
	}
	if err := c.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", c.GetURI(), err)
	}
	return c, nil
}

// joinURL joins base and remotePath with exactly one slash.
func joinURL(base string, remotePath string) string {
	if remotePath == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(remotePath, "/")
}
