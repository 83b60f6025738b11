package gateway

import (
	"context"
	"fmt"

	"github.com/chrono-app/chrono/internal/model"
)

// Health checks the gateway's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var resp healthEnvelope
	if err := c.get(ctx, "/health", &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("gateway unhealthy: status %q", resp.Status)
	}
	return nil
}

// FetchTasks retrieves the full task collection.
func (c *Client) FetchTasks(ctx context.Context) ([]model.Task, error) {
	var resp tasksEnvelope
	if err := c.get(ctx, "/tasks", &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// SaveTasks replaces the stored task collection wholesale and returns the
// collection as the gateway now holds it.
func (c *Client) SaveTasks(ctx context.Context, tasks []model.Task) ([]model.Task, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	var resp tasksEnvelope
	if err := c.post(ctx, "/tasks", tasksEnvelope{Tasks: tasks}, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// DeleteTask removes a single task by id and returns the remaining
// collection.
func (c *Client) DeleteTask(ctx context.Context, id string) ([]model.Task, error) {
	var resp tasksEnvelope
	if err := c.delete(ctx, "/tasks/"+id, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// FetchSessions retrieves the full focus-session collection.
func (c *Client) FetchSessions(ctx context.Context) ([]model.FocusSession, error) {
	var resp sessionsEnvelope
	if err := c.get(ctx, "/focus-sessions", &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// SaveSessions replaces the stored focus-session collection wholesale and
// returns the collection as the gateway now holds it.
func (c *Client) SaveSessions(ctx context.Context, sessions []model.FocusSession) ([]model.FocusSession, error) {
	if sessions == nil {
		sessions = []model.FocusSession{}
	}
	var resp sessionsEnvelope
	if err := c.post(ctx, "/focus-sessions", sessionsEnvelope{Sessions: sessions}, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// FetchUserData retrieves the aggregate-stats record. A missing record
// comes back as zero-valued stats.
func (c *Client) FetchUserData(ctx context.Context) (model.UserStats, error) {
	var resp userDataEnvelope
	if err := c.get(ctx, "/user-data", &resp); err != nil {
		return model.UserStats{}, err
	}
	if resp.UserData == nil {
		return model.UserStats{}, nil
	}
	return *resp.UserData, nil
}

// SaveUserData replaces the aggregate-stats record.
func (c *Client) SaveUserData(ctx context.Context, stats model.UserStats) error {
	return c.post(ctx, "/user-data", userDataEnvelope{UserData: &stats}, nil)
}
