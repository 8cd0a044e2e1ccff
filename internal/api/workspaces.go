// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

// =============================================================================
// WORKSPACE TYPES
// =============================================================================

// Workspace is a named container for a user's datasets and models.
type Workspace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// WorkspaceList is the user's workspaces plus the current selection.
type WorkspaceList struct {
	Workspaces          []Workspace `json:"workspaces"`
	SelectedWorkspaceID string      `json:"selected_workspace_id"`
}

// CreateWorkspaceResponse acknowledges creation with the new record.
type CreateWorkspaceResponse struct {
	Message   string    `json:"message"`
	Workspace Workspace `json:"workspace"`
}

// SelectWorkspaceResponse acknowledges a selection change.
type SelectWorkspaceResponse struct {
	Message     string `json:"message"`
	WorkspaceID string `json:"workspace_id"`
}

// =============================================================================
// WORKSPACE OPERATIONS
// =============================================================================

// ListWorkspaces returns the user's workspaces and active selection.
func (c *Client) ListWorkspaces(ctx context.Context) (*WorkspaceList, error) {
	var out WorkspaceList
	if err := c.get(ctx, "/workspaces", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateWorkspace creates a workspace. The server rejects duplicate
// names with a 409.
func (c *Client) CreateWorkspace(ctx context.Context, name, description string) (*CreateWorkspaceResponse, error) {
	req := struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}{Name: name, Description: description}

	var out CreateWorkspaceResponse
	if err := c.post(ctx, "/workspaces/create", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SelectWorkspace makes the given workspace the active one.
func (c *Client) SelectWorkspace(ctx context.Context, workspaceID string) (*SelectWorkspaceResponse, error) {
	req := struct {
		WorkspaceID string `json:"workspace_id"`
	}{WorkspaceID: workspaceID}

	var out SelectWorkspaceResponse
	if err := c.post(ctx, "/workspaces/select", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
