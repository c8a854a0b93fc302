package connectors

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"limeal.fr/launchygo-resolver/pkg/utils"
)

const FILE_SCHEME = "file"

type FileConnector struct {
	Path string
}

func (c *FileConnector) NewFromURI(uri string) Connector {
	// Example: file:///path/to/repository or file://./relative
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil
	}

	finalPath := parsed.Host + parsed.Path
	if runtime.GOOS == "windows" && len(finalPath) > 2 && finalPath[0] == '/' && finalPath[2] == ':' {
		finalPath = finalPath[1:]
	}
	if strings.HasPrefix(finalPath, ".") {
		pwd, err := os.Getwd()
		if err != nil {
			return nil
		}
		finalPath = filepath.Join(pwd, finalPath)
	}

	return &FileConnector{
		Path: filepath.FromSlash(finalPath),
	}
}

func (c *FileConnector) GetPath() string {
	return c.Path
}

func (c *FileConnector) GetURI() string {
	return FILE_SCHEME + "://" + filepath.ToSlash(c.Path)
}

func (c *FileConnector) GetScheme() string {
	return FILE_SCHEME
}

func (c *FileConnector) Connect() error {
	return nil
}

func (c *FileConnector) IsConnected() bool {
	return true
}

func (c *FileConnector) Close() error {
	return nil
}

func (c *FileConnector) localPath(remotePath string) string {
	return filepath.Join(c.Path, filepath.FromSlash(remotePath))
}

func (c *FileConnector) ReadFile(remotePath string, dest any) error {
	bytes, err := c.ReadFileBytes(remotePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return json.Unmarshal(bytes, dest)
}

func (c *FileConnector) ReadFileBytes(remotePath string) ([]byte, error) {
	return os.ReadFile(c.localPath(remotePath))
}

func (c *FileConnector) DownloadFile(remotePath string, localPath string) error {
	return utils.CopyFile(c.localPath(remotePath), localPath)
}

func (c *FileConnector) HasFile(remotePath string) bool {
	return utils.FileExists(c.localPath(remotePath))
}
