// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/providers_test.go
// Summary: Links the sample Pulse provider into the test binary so listing
//   covers init-time providers.

package main

import (
	_ "github.com/framegrace/texelfx/examples/fxplugin/pulse"
)
