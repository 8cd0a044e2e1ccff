// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - tea.Cmd constructors wrapping backend calls.
package views

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/bottrainer-tui/internal/api"
	"github.com/jeranaias/bottrainer-tui/internal/config"
	"github.com/jeranaias/bottrainer-tui/internal/dataset"
	"github.com/jeranaias/bottrainer-tui/internal/history"
	"github.com/jeranaias/bottrainer-tui/internal/storage"
)

// requestTimeout bounds one API call issued from the TUI.
func requestTimeout() time.Duration {
	cfg := config.Global()
	if cfg.API.TimeoutSecs > 0 {
		return time.Duration(cfg.API.TimeoutSecs) * time.Second
	}
	return 60 * time.Second
}

// withTimeout runs fn against a bounded context.
func withTimeout(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
		defer cancel()
		return fn(ctx)
	}
}

// =============================================================================
// SESSION COMMANDS
// =============================================================================

// sessionTickCmd schedules the next 60s sidebar countdown tick.
func sessionTickCmd() tea.Cmd {
	return tea.Tick(60*time.Second, func(t time.Time) tea.Msg {
		return SessionTickMsg{At: t}
	})
}

// pingCmd probes backend reachability.
func pingCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return PingMsg{Err: client.Ping(ctx)}
	})
}

// =============================================================================
// AUTH COMMANDS
// =============================================================================

func loginCmd(client *api.Client, email, password string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.Login(ctx, api.LoginRequest{Email: email, Password: password})
		return LoginResultMsg{Email: email, Resp: resp, Err: err}
	})
}

// adminProbeCmd checks whether the account has admin privileges. A 403
// just means a regular account.
func adminProbeCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		_, err := client.AdminStats(ctx)
		return AdminProbeMsg{IsAdmin: err == nil}
	})
}

func registerCmd(client *api.Client, username, email, password string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.Register(ctx, api.RegisterRequest{
			Username: username,
			Email:    email,
			Password: password,
		})
		return RegisterResultMsg{Resp: resp, Err: err}
	})
}

func forgotPasswordCmd(client *api.Client, email string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.ForgotPassword(ctx, email)
		return ForgotResultMsg{Resp: resp, Err: err}
	})
}

func verifyOTPCmd(client *api.Client, email, otp string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.VerifyOTP(ctx, email, otp)
		return OTPResultMsg{Resp: resp, Err: err}
	})
}

func resetPasswordCmd(client *api.Client, email, otp, newPassword string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.ResetPassword(ctx, api.ResetPasswordRequest{
			Email:       email,
			OTP:         otp,
			NewPassword: newPassword,
		})
		return ResetResultMsg{Resp: resp, Err: err}
	})
}

// =============================================================================
// WORKSPACE AND DATASET COMMANDS
// =============================================================================

func loadWorkspacesCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		list, err := client.ListWorkspaces(ctx)
		return WorkspacesLoadedMsg{List: list, Err: err}
	})
}

func selectWorkspaceCmd(client *api.Client, workspaceID string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.SelectWorkspace(ctx, workspaceID)
		return WorkspaceSelectedMsg{Resp: resp, Err: err}
	})
}

func createWorkspaceCmd(client *api.Client, name, description string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.CreateWorkspace(ctx, name, description)
		return WorkspaceCreatedMsg{Resp: resp, Err: err}
	})
}

func loadDatasetsCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		root, err := client.GetDatasets(ctx)
		return DatasetsLoadedMsg{Root: root, Err: err}
	})
}

func selectDatasetCmd(client *api.Client, checksum string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.SelectDataset(ctx, checksum)
		return DatasetSelectedMsg{Resp: resp, Err: err}
	})
}

// parseDatasetCmd parses an upload candidate locally. Parsing happens
// off the Update loop since files can be several megabytes.
func parseDatasetCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return DatasetParsedMsg{Filename: path, Err: err}
		}
		defer f.Close()

		ds, err := dataset.ParseFile(path, f)
		if err != nil {
			return DatasetParsedMsg{Filename: path, Err: err}
		}
		return DatasetParsedMsg{
			Filename:  ds.Summary.Filename,
			Summary:   ds.Summary,
			Sentences: ds.Sentences,
		}
	}
}

// cacheDatasetCmd writes a parsed dataset into the local cache so the
// dashboard can show it without asking the server.
func cacheDatasetCmd(summary dataset.Summary, sentences []string) tea.Cmd {
	return func() tea.Msg {
		store, err := storage.NewDatasetStore()
		if err != nil {
			return DatasetCachedMsg{Err: err}
		}
		checksum, err := store.Save(&storage.StoredDataset{
			Summary:   summary,
			Sentences: sentences,
		})
		return DatasetCachedMsg{Checksum: checksum, Err: err}
	}
}

// selectCachedDatasetCmd mirrors a dataset selection into the local
// cache marker and returns the cached copy. A dataset that was never
// parsed on this machine is simply not in the cache.
func selectCachedDatasetCmd(checksum string) tea.Cmd {
	return func() tea.Msg {
		store, err := storage.NewDatasetStore()
		if err != nil {
			return CachedDatasetMsg{Err: err}
		}
		if err := store.Select(checksum); err != nil {
			return CachedDatasetMsg{Err: err}
		}
		ds, err := store.Load(checksum)
		return CachedDatasetMsg{DS: ds, Err: err}
	}
}

// loadCachedDatasetCmd reads the locally selected dataset from the
// cache.
func loadCachedDatasetCmd() tea.Cmd {
	return func() tea.Msg {
		store, err := storage.NewDatasetStore()
		if err != nil {
			return CachedDatasetMsg{Err: err}
		}
		checksum, err := store.Selected()
		if err != nil || checksum == "" {
			return CachedDatasetMsg{Err: err}
		}
		ds, err := store.Load(checksum)
		return CachedDatasetMsg{DS: ds, Err: err}
	}
}

// saveDatasetCmd uploads a parsed dataset summary.
func saveDatasetCmd(client *api.Client, summary dataset.Summary) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.SaveDataset(ctx, api.SaveDatasetRequest{
			Filename: summary.Filename,
			Checksum: summary.Checksum,
			Analysis: summary.AnalysisPayload(),
		})
		return DatasetSavedMsg{Resp: resp, Err: err}
	})
}

// =============================================================================
// TRAINING AND PREDICTION COMMANDS
// =============================================================================

func startTrainingCmd(client *api.Client, datasetChecksum string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.StartTraining(ctx, datasetChecksum)
		return TrainStartedMsg{Resp: resp, Err: err}
	})
}

func trainStatusCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		status, err := client.TrainingStatus(ctx)
		return TrainStatusMsg{Status: status, Err: err}
	})
}

// trainPollCmd schedules the next training status poll.
func trainPollCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return TrainPollMsg{}
	})
}

func predictCmd(client *api.Client, text, modelID string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		pred, err := client.Predict(ctx, text, modelID)
		return PredictionMsg{Text: text, Pred: pred, Err: err}
	})
}

// recordPredictionCmd writes a prediction to the local history store.
// Fire-and-forget: history failures never surface in the UI.
func recordPredictionCmd(store *history.Store, text, modelID string, pred *api.Prediction) tea.Cmd {
	if store == nil || pred == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Record(ctx, history.Entry{
			Text:       text,
			Intent:     pred.Intent,
			Confidence: pred.Confidence,
			ModelID:    modelID,
			CreatedAt:  time.Now(),
		})
		return nil
	}
}

// =============================================================================
// ANNOTATION, REVIEW, AND EVALUATION COMMANDS
// =============================================================================

func loadAnnotationsCmd(client *api.Client, datasetChecksum string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		set, err := client.GetAnnotations(ctx, datasetChecksum)
		return AnnotationsLoadedMsg{Set: set, Err: err}
	})
}

func saveAnnotationsCmd(client *api.Client, req api.SaveAnnotationsRequest) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.SaveAnnotations(ctx, req)
		return AnnotationsSavedMsg{Resp: resp, Err: err}
	})
}

func suggestUncertainCmd(client *api.Client, req api.SuggestRequest) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.SuggestUncertain(ctx, req)
		return SuggestionsMsg{Resp: resp, Err: err}
	})
}

func saveCorrectionsCmd(client *api.Client, items []api.Correction) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.SaveCorrections(ctx, items)
		return CorrectionsSavedMsg{Resp: resp, Err: err}
	})
}

func loadCorrectionsCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		list, err := client.ListCorrections(ctx)
		return CorrectionListMsg{List: list, Err: err}
	})
}

func saveFeedbackCmd(client *api.Client, items []api.Feedback) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.SaveFeedback(ctx, items)
		return FeedbackSavedMsg{Resp: resp, Err: err}
	})
}

func loadFeedbackCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		list, err := client.ListFeedback(ctx)
		return FeedbackLoadedMsg{List: list, Err: err}
	})
}

// loadEvalDataCmd fetches the annotation set the evaluation draws its
// labeled samples from.
func loadEvalDataCmd(client *api.Client, datasetChecksum string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		set, err := client.GetAnnotations(ctx, datasetChecksum)
		return EvalDataLoadedMsg{Set: set, Err: err}
	})
}

func runEvaluationCmd(client *api.Client, req api.EvalRequest) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		result, err := client.RunEvaluation(ctx, req)
		return EvalResultMsg{Result: result, Err: err}
	})
}

func saveComparisonCmd(client *api.Client, req api.ModelComparisonSaveRequest) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.SaveModelComparison(ctx, req)
		return ComparisonSavedMsg{Resp: resp, Err: err}
	})
}

func loadHistoryCmd(store *history.Store, limit int) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := store.Recent(ctx, limit)
		return HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

// =============================================================================
// ADMIN COMMANDS
// =============================================================================

func loadAdminStatsCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		stats, err := client.AdminStats(ctx)
		return AdminStatsMsg{Stats: stats, Err: err}
	})
}

func loadAdminUsersCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		list, err := client.AdminListUsers(ctx)
		return AdminUsersMsg{List: list, Err: err}
	})
}

func loadAdminWorkspacesCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		list, err := client.AdminListWorkspaces(ctx)
		return AdminWorkspacesMsg{List: list, Err: err}
	})
}

func loadAdminDatasetsCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		list, err := client.AdminListDatasets(ctx)
		return AdminDatasetsMsg{List: list, Err: err}
	})
}

func adminDeleteUserCmd(client *api.Client, email string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.AdminDeleteUser(ctx, email)
		return AdminActionMsg{Action: "delete-user", Resp: resp, Err: err}
	})
}

func adminDeleteWorkspaceCmd(client *api.Client, workspaceID string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.AdminDeleteWorkspace(ctx, workspaceID)
		return AdminActionMsg{Action: "delete-workspace", Resp: resp, Err: err}
	})
}

func adminDeleteDatasetCmd(client *api.Client, workspaceID, checksum string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.AdminDeleteDataset(ctx, workspaceID, checksum)
		return AdminActionMsg{Action: "delete-dataset", Resp: resp, Err: err}
	})
}

func adminResetPasswordCmd(client *api.Client, email, newPassword string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.AdminResetUserPassword(ctx, email, newPassword)
		return AdminActionMsg{Action: "reset-password", Resp: resp, Err: err}
	})
}

func loadAdminModelsCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		list, err := client.AdminListModels(ctx)
		return AdminModelsMsg{List: list, Err: err}
	})
}

func adminDeleteModelCmd(client *api.Client, comparisonID string, modelIndex int) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		resp, err := client.AdminDeleteModel(ctx, comparisonID, modelIndex)
		return AdminActionMsg{Action: "delete-model", Resp: resp, Err: err}
	})
}

func loadAdminLogsCmd(client *api.Client, kind string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		list, err := client.AdminLogs(ctx, kind)
		return AdminLogsMsg{Kind: kind, List: list, Err: err}
	})
}

func loadAdminAnnotationsCmd(client *api.Client) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		list, err := client.AdminListAnnotations(ctx)
		return AdminAnnotationsMsg{List: list, Err: err}
	})
}
