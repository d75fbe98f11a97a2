// Copyright (C) 2026 AgentMesh Project
//
// This file is part of agentauth-go.
//
// agentauth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// agentauth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with agentauth-go.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads the YAML startup configuration.
//
// A file looks like:
//
//	auth:
//	  clock_skew: 300s
//	  nonce_window: 360s
//	  mutual: false
//	session:
//	  ttl: 3600s
//	  sweep_interval: 60s
//	  sweep_grace: 60s
//	resolver:
//	  timeout: 5s
//	  cache_ttl: 300s
//	  allow_insecure: false
//	methods: [wba, key, example]
//
// Durations accept Go syntax ("300s", "5m") or bare integer seconds.
// Omitted fields keep the defaults from Default; unknown keys fail the
// load. The resulting Config is plain data handed to components at
// construction.
package config
