package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/rakatama/koperasi-admin/internal/infra/gateway/platform"
	"github.com/rakatama/koperasi-admin/pkg/logger"
)

var (
	// ErrUnknownResource means the name is not in the registry
	ErrUnknownResource = errors.New("unknown resource")

	// ErrNotConfirmed blocks a delete that skipped the confirmation step
	ErrNotConfirmed = errors.New("delete requires confirmation")

	// ErrNotMultipart rejects a file upload against a JSON-only resource
	ErrNotMultipart = errors.New("resource does not accept file uploads")
)

// Gateway is the resource slice of the platform API
type Gateway interface {
	ListResource(ctx context.Context, token, path string, query url.Values) ([]json.RawMessage, error)
	GetResource(ctx context.Context, token, path, id string) (json.RawMessage, error)
	CreateResource(ctx context.Context, token, path string, body any) (json.RawMessage, error)
	UpdateResource(ctx context.Context, token, path, id string, body any) (json.RawMessage, error)
	DeleteResource(ctx context.Context, token, path, id string) error
	DeleteResourceTunneled(ctx context.Context, token, path, id string) error
	CreateResourceMultipart(ctx context.Context, token, path string, fields map[string]string, files []platform.Upload, progress platform.ProgressFunc) (json.RawMessage, error)
	UpdateResourceMultipart(ctx context.Context, token, path, id string, fields map[string]string, files []platform.Upload, progress platform.ProgressFunc) (json.RawMessage, error)
}

// Notifier receives fire-and-forget toast messages
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Controller is the one parametrized list/modal/delete flow shared by all
// CRUD screens: list, save (create or update keyed by id presence), confirmed
// delete, with an unconditional list re-fetch after every mutation.
type Controller struct {
	gateway  Gateway
	notifier Notifier
	logger   *logger.Logger
}

// NewController creates a new resource controller
func NewController(gateway Gateway, notifier Notifier, log *logger.Logger) *Controller {
	return &Controller{
		gateway:  gateway,
		notifier: notifier,
		logger:   log.WithField("component", "resource"),
	}
}

// List fetches a resource collection with pass-through filters
func (c *Controller) List(ctx context.Context, token, name string, query url.Values) ([]json.RawMessage, error) {
	desc, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	return c.gateway.ListResource(ctx, token, desc.Path, query)
}

// Get fetches a single record for the edit modal
func (c *Controller) Get(ctx context.Context, token, name, id string) (json.RawMessage, error) {
	desc, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	return c.gateway.GetResource(ctx, token, desc.Path, id)
}

// Save creates (empty id) or updates (non-empty id) a record with a JSON
// body, then returns the re-fetched list.
func (c *Controller) Save(ctx context.Context, token, name, id string, body json.RawMessage) ([]json.RawMessage, error) {
	desc, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}

	var err error
	if id == "" {
		_, err = c.gateway.CreateResource(ctx, token, desc.Path, body)
	} else {
		_, err = c.gateway.UpdateResource(ctx, token, desc.Path, id, body)
	}
	if err != nil {
		c.notifier.Error(err.Error())
		return nil, err
	}

	c.notifier.Success(desc.Name + " saved")
	return c.gateway.ListResource(ctx, token, desc.Path, nil)
}

// SaveMultipart is Save for resources that carry file uploads. Updates
// tunnel PUT through POST with a _method field; progress reaches the caller
// through the callback.
func (c *Controller) SaveMultipart(ctx context.Context, token, name, id string, fields map[string]string, files []platform.Upload, progress platform.ProgressFunc) ([]json.RawMessage, error) {
	desc, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	if !desc.Multipart {
		return nil, fmt.Errorf("%w: %s", ErrNotMultipart, name)
	}

	var err error
	if id == "" {
		_, err = c.gateway.CreateResourceMultipart(ctx, token, desc.Path, fields, files, progress)
	} else {
		_, err = c.gateway.UpdateResourceMultipart(ctx, token, desc.Path, id, fields, files, progress)
	}
	if err != nil {
		c.notifier.Error(err.Error())
		return nil, err
	}

	c.notifier.Success(desc.Name + " saved")
	return c.gateway.ListResource(ctx, token, desc.Path, nil)
}

// Delete removes a record. Deletion is never immediate in the panel: the
// confirmed flag is the second step of the confirmation modal.
func (c *Controller) Delete(ctx context.Context, token, name, id string, confirmed bool) ([]json.RawMessage, error) {
	desc, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	if !confirmed {
		return nil, ErrNotConfirmed
	}

	del := c.gateway.DeleteResource
	if desc.Multipart {
		del = c.gateway.DeleteResourceTunneled
	}
	if err := del(ctx, token, desc.Path, id); err != nil {
		c.notifier.Error(err.Error())
		return nil, err
	}

	c.logger.Info("resource deleted", "resource", desc.Name, "id", id)
	c.notifier.Success(desc.Name + " deleted")
	return c.gateway.ListResource(ctx, token, desc.Path, nil)
}
