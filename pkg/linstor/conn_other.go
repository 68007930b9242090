//go:build !unix

package linstor

import (
	"io"
	"net"

	"github.com/pkg/errors"
)

func isConnClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed)
}
