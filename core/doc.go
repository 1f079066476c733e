// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package core defines the domain types shared across Dalil: language tags,
// retrieved passages, conversation turns, and content-based identifiers.
//
// The Language type enumerates the two supported query languages (English and
// Arabic). Every component that accepts a language tag validates it against
// this set and fails with ErrUnsupportedLanguage for anything else; tags are
// never silently coerced.
package core
