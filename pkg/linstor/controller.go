package linstor

import (
	"context"
	"net/http"
	"strings"
)

func (c *Client) ControllerProps(ctx context.Context) ([]Result, error) {
	return c.execute(ctx, APILstCtrlProps, http.MethodGet, apiPath("controller", "properties"), nil)
}

// ControllerProperties returns the controller properties.
func (c *Client) ControllerProperties(ctx context.Context) (*ControllerProperties, error) {
	return fetchOne[*ControllerProperties](ctx, c, APILstCtrlProps, apiPath("controller", "properties"))
}

func (c *Client) ControllerSetProp(ctx context.Context, key, value string) ([]Result, error) {
	body := PropsModify{OverrideProps: map[string]string{key: value}}
	return c.execute(ctx, APISetCtrlProp, http.MethodPost, apiPath("controller", "properties"), body)
}

func (c *Client) ControllerDelProp(ctx context.Context, key string) ([]Result, error) {
	body := PropsModify{DeleteProps: []string{key}}
	return c.execute(ctx, APISetCtrlProp, http.MethodPost, apiPath("controller", "properties"), body)
}

// FetchControllerVersion asks the controller for its version. Unlike
// ControllerVersion it always performs a request.
func (c *Client) FetchControllerVersion(ctx context.Context) (*ControllerVersion, error) {
	return fetchOne[*ControllerVersion](ctx, c, APIVersion, versionPath)
}

// ControllerInfo returns "LINSTOR,Controller,<version>,<git hash>,<build time>".
func (c *Client) ControllerInfo(ctx context.Context) (string, error) {
	v, err := c.FetchControllerVersion(ctx)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{"LINSTOR", "Controller", v.Version, v.GitHash, v.BuildTime}, ","), nil
}

type passphraseBody struct {
	NewPassphrase string `json:"new_passphrase"`
	OldPassphrase string `json:"old_passphrase,omitempty"`
}

// CryptCreatePassphrase sets the master passphrase for encrypted volumes.
func (c *Client) CryptCreatePassphrase(ctx context.Context, passphrase string) ([]Result, error) {
	body := passphraseBody{NewPassphrase: passphrase}
	return c.execute(ctx, APICrtCryptPass, http.MethodPost, apiPath("encryption", "passphrase"), body)
}

// CryptEnterPassphrase unlocks encrypted volumes. The body is the bare JSON
// string.
func (c *Client) CryptEnterPassphrase(ctx context.Context, passphrase string) ([]Result, error) {
	return c.execute(ctx, APIEnterCryptPass, http.MethodPatch, apiPath("encryption", "passphrase"), passphrase)
}

func (c *Client) CryptModifyPassphrase(ctx context.Context, oldPassphrase, newPassphrase string) ([]Result, error) {
	body := passphraseBody{NewPassphrase: newPassphrase, OldPassphrase: oldPassphrase}
	return c.execute(ctx, APIModCryptPass, http.MethodPost, apiPath("encryption", "passphrase"), body)
}
