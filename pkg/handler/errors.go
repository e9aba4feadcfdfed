// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package handler

import "errors"

// ErrCapacity is returned by Record when a batch cannot accept another row
// even immediately after a flush — the only way this happens is a
// zero-capacity BatchPolicy, since Flush always empties a non-degenerate
// batch.
var ErrCapacity = errors.New("handler: batch capacity exhausted")

// ErrEncode is returned by Serialize when encoding panics. Encoding this
// engine's own batch and schema types has no ordinary failure mode; this
// exists to give callers one error type to check rather than letting a
// corrupted in-memory batch crash the process.
var ErrEncode = errors.New("handler: failed to encode batch event")

// ErrDecode is returned by Deserialize when the wire bytes are truncated or
// otherwise malformed.
var ErrDecode = errors.New("handler: failed to decode batch event")

// ErrIo is returned when a configured Sink fails to accept a flushed
// buffer. The handler's own record/flush/serialize/deserialize logic never
// touches I/O directly — this can only surface through a Sink.
var ErrIo = errors.New("handler: sink write failed")
