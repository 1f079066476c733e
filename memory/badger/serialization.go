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


package badger

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/dalil/core"
	"github.com/poiesic/dalil/memory"
)

// marshalTurn serializes a Turn to bytes.
// Layout: question, answer, timestamp as UnixMicro.
func marshalTurn(turn *core.Turn) []byte {
	ts := turn.Timestamp.UnixMicro()
	size := ord.String.Size(turn.Question) +
		ord.String.Size(turn.Answer) +
		varint.Int64.Size(ts)

	buf := make([]byte, size)
	n := ord.String.Marshal(turn.Question, buf)
	n += ord.String.Marshal(turn.Answer, buf[n:])
	varint.Int64.Marshal(ts, buf[n:])
	return buf
}

// unmarshalTurn deserializes a Turn from bytes.
func unmarshalTurn(data []byte) (*core.Turn, error) {
	question, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: question: %w", memory.ErrSerializationFailed, err)
	}

	answer, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: answer: %w", memory.ErrSerializationFailed, err)
	}
	n += m

	ts, _, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp: %w", memory.ErrSerializationFailed, err)
	}

	return &core.Turn{
		Question:  question,
		Answer:    answer,
		Timestamp: time.UnixMicro(ts).UTC(),
	}, nil
}
