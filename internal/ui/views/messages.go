// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// messages.go - Bubble Tea message types for async API results.
package views

import (
	"time"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/dataset"
	"github.com/jeranaias/bottrainer-tui/internal/history"
	"github.com/jeranaias/bottrainer-tui/internal/storage"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// UnauthorizedMsg is sent when the API client reports a rejected token.
// The session storage has already been wiped when this arrives.
type UnauthorizedMsg struct{}

// SessionExpiredMsg is sent by the watchdog when the 12 hour session
// lifetime runs out. Emitted at most once per login.
type SessionExpiredMsg struct{}

// SessionTickMsg drives the sidebar countdown. Fires every 60 seconds.
type SessionTickMsg struct {
	At time.Time
}

// LoggedOutMsg is sent after an explicit logout completes.
type LoggedOutMsg struct{}

// =============================================================================
// AUTH MESSAGES
// =============================================================================

// LoginResultMsg carries the outcome of a login attempt.
type LoginResultMsg struct {
	Email string
	Resp  *api.LoginResponse
	Err   error
}

// AdminProbeMsg reports whether the logged-in account has admin
// privileges.
type AdminProbeMsg struct {
	IsAdmin bool
}

// RegisterResultMsg carries the outcome of account creation.
type RegisterResultMsg struct {
	Resp *api.MessageResponse
	Err  error
}

// ForgotResultMsg carries the outcome of the forgot-password request.
type ForgotResultMsg struct {
	Resp *api.MessageResponse
	Err  error
}

// OTPResultMsg carries the outcome of OTP verification.
type OTPResultMsg struct {
	Resp *api.MessageResponse
	Err  error
}

// ResetResultMsg carries the outcome of the final password reset.
type ResetResultMsg struct {
	Resp *api.MessageResponse
	Err  error
}

// =============================================================================
// WORKSPACE AND DATASET MESSAGES
// =============================================================================

// WorkspacesLoadedMsg delivers the workspace list.
type WorkspacesLoadedMsg struct {
	List *api.WorkspaceList
	Err  error
}

// WorkspaceSelectedMsg confirms a workspace selection.
type WorkspaceSelectedMsg struct {
	Resp *api.SelectWorkspaceResponse
	Err  error
}

// WorkspaceCreatedMsg confirms workspace creation.
type WorkspaceCreatedMsg struct {
	Resp *api.CreateWorkspaceResponse
	Err  error
}

// DatasetsLoadedMsg delivers the dataset collection.
type DatasetsLoadedMsg struct {
	Root *api.DatasetRoot
	Err  error
}

// DatasetSavedMsg confirms a dataset upload.
type DatasetSavedMsg struct {
	Resp *api.SaveDatasetResponse
	Err  error
}

// DatasetSelectedMsg confirms a dataset selection.
type DatasetSelectedMsg struct {
	Resp *api.SelectDatasetResponse
	Err  error
}

// DatasetParsedMsg delivers a locally parsed dataset before upload.
type DatasetParsedMsg struct {
	Filename  string
	Summary   dataset.Summary
	Sentences []string
	Err       error
}

// DatasetCachedMsg confirms a parsed dataset was written to the local
// cache.
type DatasetCachedMsg struct {
	Checksum string
	Err      error
}

// CachedDatasetMsg delivers the locally cached copy of the selected
// dataset. DS is nil when nothing is cached.
type CachedDatasetMsg struct {
	DS  *storage.StoredDataset
	Err error
}

// =============================================================================
// TRAINING AND PREDICTION MESSAGES
// =============================================================================

// TrainStartedMsg confirms a training kick-off.
type TrainStartedMsg struct {
	Resp *api.TrainStartResponse
	Err  error
}

// TrainStatusMsg delivers a training status poll result.
type TrainStatusMsg struct {
	Status *api.TrainStatus
	Err    error
}

// TrainPollMsg schedules the next status poll while training runs.
type TrainPollMsg struct{}

// PredictionMsg delivers a single prediction.
type PredictionMsg struct {
	Text string
	Pred *api.Prediction
	Err  error
}

// =============================================================================
// ANNOTATION, REVIEW, AND EVALUATION MESSAGES
// =============================================================================

// AnnotationsLoadedMsg delivers saved annotations for a dataset.
type AnnotationsLoadedMsg struct {
	Set *api.AnnotationSet
	Err error
}

// AnnotationsSavedMsg confirms an annotation save.
type AnnotationsSavedMsg struct {
	Resp *api.SaveAnnotationsResponse
	Err  error
}

// SuggestionsMsg delivers uncertain samples for active learning review.
type SuggestionsMsg struct {
	Resp *api.SuggestResponse
	Err  error
}

// CorrectionsSavedMsg confirms saved corrections.
type CorrectionsSavedMsg struct {
	Resp *api.SaveCountResponse
	Err  error
}

// CorrectionListMsg delivers the stored corrections for the active
// workspace.
type CorrectionListMsg struct {
	List *api.CorrectionList
	Err  error
}

// FeedbackSavedMsg confirms saved feedback.
type FeedbackSavedMsg struct {
	Resp *api.SaveCountResponse
	Err  error
}

// FeedbackLoadedMsg delivers the feedback list.
type FeedbackLoadedMsg struct {
	List *api.FeedbackList
	Err  error
}

// EvalDataLoadedMsg delivers the labeled samples the evaluation runs on.
type EvalDataLoadedMsg struct {
	Set *api.AnnotationSet
	Err error
}

// EvalResultMsg delivers an evaluation run result.
type EvalResultMsg struct {
	Result *api.EvalResult
	Err    error
}

// ComparisonSavedMsg acknowledges a saved model comparison entry.
type ComparisonSavedMsg struct {
	Resp *api.MessageResponse
	Err  error
}

// HistoryLoadedMsg delivers recent prediction history from the local store.
type HistoryLoadedMsg struct {
	Entries []history.Entry
	Err     error
}

// =============================================================================
// ADMIN MESSAGES
// =============================================================================

// AdminStatsMsg delivers platform statistics.
type AdminStatsMsg struct {
	Stats *api.AdminStats
	Err   error
}

// AdminUsersMsg delivers the user list.
type AdminUsersMsg struct {
	List *api.AdminUserList
	Err  error
}

// AdminWorkspacesMsg delivers the workspace list across all users.
type AdminWorkspacesMsg struct {
	List *api.AdminWorkspaceList
	Err  error
}

// AdminDatasetsMsg delivers the dataset list across all users.
type AdminDatasetsMsg struct {
	List *api.AdminDatasetList
	Err  error
}

// AdminModelsMsg delivers the saved model comparison rows.
type AdminModelsMsg struct {
	List *api.AdminModelList
	Err  error
}

// AdminLogsMsg delivers one activity log.
type AdminLogsMsg struct {
	Kind string
	List *api.AdminLogList
	Err  error
}

// AdminAnnotationsMsg delivers the annotation sets across all users.
type AdminAnnotationsMsg struct {
	List *api.AdminAnnotationList
	Err  error
}

// AdminActionMsg carries the outcome of a destructive admin action
// (delete user, delete workspace, reset password).
type AdminActionMsg struct {
	Action string
	Resp   *api.MessageResponse
	Err    error
}

// =============================================================================
// MISC MESSAGES
// =============================================================================

// HelpRenderedMsg delivers the glamour-rendered help markdown.
type HelpRenderedMsg struct {
	Content string
	Err     error
}

// PingMsg delivers the backend reachability probe result.
type PingMsg struct {
	Err error
}
