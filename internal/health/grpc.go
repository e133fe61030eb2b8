package health

import (
	"fmt"

	"connectrpc.com/connect"
)

func connectNotFound(service string) error {
	return connect.NewError(connect.CodeNotFound, fmt.Errorf("unknown service %q", service))
}
