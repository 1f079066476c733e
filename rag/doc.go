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


// Package rag implements the retrieval-augmented query pipeline.
//
// A Processor answers one query at a time: it detects the query language,
// prefixes the query with the user's conversation history, retrieves
// passages from the matching document collection via multi-query expansion,
// renders the generation prompt, streams the model's answer, and persists
// the completed turn. The only masked failure is language detection; every
// other error reaches the caller untouched.
//
// The Retriever can also be used on its own for multi-query retrieval
// without the surrounding conversation machinery.
package rag
