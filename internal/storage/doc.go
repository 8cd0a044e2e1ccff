// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local dataset cache for the trainer TUI.
//
// This package caches parsed dataset uploads on disk so the annotation
// and training flows can work with sentences without re-downloading or
// re-parsing files. Entries are keyed by content checksum.
//
// # Key Types
//
//   - DatasetStore: On-disk cache with a bounded entry count
//   - StoredDataset: Parsed upload with its summary and sentences
//   - DatasetMeta: Lightweight metadata for listing
//
// # Usage
//
// Create a store and cache a parsed dataset:
//
//	store, err := storage.NewDatasetStore()
//	checksum, err := store.Save(&storage.StoredDataset{Summary: summary})
//
// List and load cached datasets:
//
//	metas, err := store.List()
//	ds, err := store.Load(metas[0].Checksum)
//
// Mark one dataset as active:
//
//	err := store.Select(checksum)
//	active, err := store.Selected()
//
// # Storage Location
//
// Datasets are cached in ~/.bottrainer/datasets/ as JSON files.
package storage
