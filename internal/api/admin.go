// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/url"
)

// =============================================================================
// ADMIN TYPES
// =============================================================================

// AdminStats is the system-wide summary shown on the admin view.
type AdminStats struct {
	TotalUsers              int     `json:"total_users"`
	TotalWorkspaces         int     `json:"total_workspaces"`
	TotalDatasets           int     `json:"total_datasets"`
	TotalCorrections        int     `json:"total_corrections"`
	TotalAnnotations        int     `json:"total_annotations"`
	AvgDatasetsPerWorkspace float64 `json:"avg_datasets_per_workspace"`
}

// AdminUser is one registered account as seen by an admin.
type AdminUser struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// AdminUserList wraps the user listing.
type AdminUserList struct {
	Users []AdminUser `json:"users"`
	Count int         `json:"count"`
}

// AdminWorkspace is a workspace with its owner attached.
type AdminWorkspace struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OwnerEmail string `json:"owner_email"`
	CreatedAt  string `json:"created_at"`
}

// AdminWorkspaceList wraps the cross-user workspace listing.
type AdminWorkspaceList struct {
	Workspaces []AdminWorkspace `json:"workspaces"`
	Count      int              `json:"count"`
}

// AdminDataset is a dataset entry with its owner attached.
type AdminDataset struct {
	OwnerEmail  string `json:"owner_email"`
	WorkspaceID string `json:"workspace_id"`
	Filename    string `json:"filename"`
	Checksum    string `json:"checksum"`
	UpdatedAt   string `json:"updated_at"`
}

// AdminDatasetList wraps the cross-user dataset listing.
type AdminDatasetList struct {
	Datasets []AdminDataset `json:"datasets"`
	Count    int            `json:"count"`
}

// AdminModelList wraps the saved model comparison listing.
type AdminModelList struct {
	Models []map[string]any `json:"models"`
	Count  int              `json:"count"`
}

// AdminLogList wraps an activity log listing. Entries are opaque
// documents; the view renders whatever fields are present.
type AdminLogList struct {
	Logs  []map[string]any `json:"logs"`
	Count int              `json:"count"`
}

// AdminAnnotationList wraps the cross-user annotation listing.
type AdminAnnotationList struct {
	Annotations []map[string]any `json:"annotations"`
	Count       int              `json:"count"`
}

// =============================================================================
// ADMIN OPERATIONS
// =============================================================================
//
// Every call here requires an admin account. A non-admin token gets a
// 403, which the UI treats as a privilege failure rather than session
// expiry.

// AdminStats fetches system-wide statistics.
func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var out AdminStats
	if err := c.get(ctx, "/admin/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListUsers lists all registered accounts.
func (c *Client) AdminListUsers(ctx context.Context) (*AdminUserList, error) {
	var out AdminUserList
	if err := c.get(ctx, "/admin/users", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDeleteUser removes an account and all its data.
func (c *Client) AdminDeleteUser(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.delete(ctx, "/admin/users/"+url.PathEscape(email), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminResetUserPassword force-sets a user's password.
func (c *Client) AdminResetUserPassword(ctx context.Context, email, newPassword string) (*MessageResponse, error) {
	req := struct {
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
	}{Email: email, NewPassword: newPassword}

	var out MessageResponse
	if err := c.post(ctx, "/admin/users/reset-password", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListWorkspaces lists workspaces across all users.
func (c *Client) AdminListWorkspaces(ctx context.Context) (*AdminWorkspaceList, error) {
	var out AdminWorkspaceList
	if err := c.get(ctx, "/admin/workspaces", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDeleteWorkspace removes a workspace and its data.
func (c *Client) AdminDeleteWorkspace(ctx context.Context, workspaceID string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.delete(ctx, "/admin/workspaces/"+url.PathEscape(workspaceID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListDatasets lists datasets across all users.
func (c *Client) AdminListDatasets(ctx context.Context) (*AdminDatasetList, error) {
	var out AdminDatasetList
	if err := c.get(ctx, "/admin/datasets", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDeleteDataset removes one dataset entry by workspace and
// checksum.
func (c *Client) AdminDeleteDataset(ctx context.Context, workspaceID, checksum string) (*MessageResponse, error) {
	path := fmt.Sprintf("/admin/datasets/%s/%s", url.PathEscape(workspaceID), url.PathEscape(checksum))
	var out MessageResponse
	if err := c.delete(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListModels lists saved model comparisons.
func (c *Client) AdminListModels(ctx context.Context) (*AdminModelList, error) {
	var out AdminModelList
	if err := c.get(ctx, "/admin/models", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDeleteModel removes one model row from a saved comparison.
func (c *Client) AdminDeleteModel(ctx context.Context, comparisonID string, modelIndex int) (*MessageResponse, error) {
	path := fmt.Sprintf("/admin/models/%s/%d", url.PathEscape(comparisonID), modelIndex)
	var out MessageResponse
	if err := c.delete(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminLogs fetches one of the activity logs: uploads, corrections,
// active-learning, or training.
func (c *Client) AdminLogs(ctx context.Context, kind string) (*AdminLogList, error) {
	var out AdminLogList
	if err := c.get(ctx, "/admin/logs/"+url.PathEscape(kind), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListAnnotations lists annotation sets across all users.
func (c *Client) AdminListAnnotations(ctx context.Context) (*AdminAnnotationList, error) {
	var out AdminAnnotationList
	if err := c.get(ctx, "/admin/annotations", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
