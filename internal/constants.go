/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "time"

const (
	Version   = "0.4.0"
	UserAgent = "vttc-ratings/" + Version + " (+https://github.com/mikeb26/vttc-ratings)"

	DefaultLogPrefix   = "tournament_logs"
	DefaultSelector    = "pre"
	DefaultCacheMaxAge = 5 * time.Minute
	DefaultListenAddr  = ":8080"
	DefaultConfigFile  = "vttc.yaml"
)
