package ingest

import _ "embed"

// roadRiskFallbackJSON is the bundled level-5 road-risk dataset served when
// the backend analysis endpoint is unreachable.
//
//go:embed mock/road_risk_level5.json
var roadRiskFallbackJSON []byte
