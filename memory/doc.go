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


// Package memory defines the per-user conversation history store.
//
// The Store interface is the only way the rest of the system touches
// conversation state: a transcript read (History) and a turn append
// (SaveTurn), both keyed by user id. Two implementations are provided:
//
//   - memory/inmem: process-local store over langchaingo conversation
//     buffers, suitable for single-process deployments and tests
//   - memory/badger: persistent store over BadgerDB, surviving restarts
//
// Both render history in the same "Human:" / "AI:" transcript format, so
// implementations are interchangeable behind the interface.
package memory
