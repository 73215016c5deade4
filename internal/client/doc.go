// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the study-marks client application runtime.
//
// It wires the server adapter, the identity session, the bookmark store and
// the terminal UI into a single process lifecycle.
package client
