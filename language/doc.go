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


// Package language provides language identification for incoming queries.
//
// The detector classifies text over the full set of languages the underlying
// model knows, then accepts only English and Arabic. Classification failures
// and unsupported languages surface as the same error kind: callers never
// need to distinguish "the classifier could not decide" from "the language is
// not supported".
package language
