/*
Copyright 2026 ScanDB Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
// Package common provides shared constants and utilities
package common

const (
	// VersionMajor is the major version of scandb
	VersionMajor = "0"
	// VersionMinor is the minor version of scandb
	VersionMinor = "1"
	// VersionPatch is the patch version of scandb
	VersionPatch = "0"

	// VersionString is the full version string of scandb
	VersionString = "ScanDB v" + VersionMajor + "." + VersionMinor + "." + VersionPatch
)
