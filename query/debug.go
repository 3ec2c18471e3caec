// Pyrotheus - Flamegraph & Metrics Aggregation Helpers
// Copyright (C) 2025 Andy Dixon <andy@andydixon.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// query/debug.go
package query

// DebugMode will be set once, in main(), then read by the fetcher and the
// clients. When true, every fetch and every decoded payload gets a [DEBUG]
// line. Chatty; leave it off in production.
var DebugMode bool
