/* Copyright (C) 2016 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */


package gotracks

/* -------------------------------------------------------------------------- */

import "errors"
import "fmt"

/* -------------------------------------------------------------------------- */

// Connection failures and timeouts. Callers may retry.
type TransportError struct {
  Op  string
  Err error
}

func (e *TransportError) Error() string {
  return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
  return e.Err
}

// Non-success status returned by the service.
type RemoteRejected struct {
  Op      string
  Status  int
  Message string
}

func (e *RemoteRejected) Error() string {
  if e.Message == "" {
    return fmt.Sprintf("%s: rejected by service with status %d", e.Op, e.Status)
  }
  return fmt.Sprintf("%s: rejected by service with status %d: %s", e.Op, e.Status, e.Message)
}

// Syntactically valid payload that does not contain the expected data.
type MalformedResponse struct {
  Op     string
  Reason string
}

func (e *MalformedResponse) Error() string {
  return fmt.Sprintf("%s: malformed response: %s", e.Op, e.Reason)
}

// Binary payload whose length is not a multiple of the element width.
type TruncatedStream struct {
  Op     string
  Length int
  Width  int
}

func (e *TruncatedStream) Error() string {
  return fmt.Sprintf("%s: truncated stream: %d bytes is not a multiple of element width %d", e.Op, e.Length, e.Width)
}

// Bin width below one, rejected before any request is sent.
type InvalidWindow struct {
  Op     string
  Window int
}

func (e *InvalidWindow) Error() string {
  if e.Op == "" {
    return fmt.Sprintf("invalid window size %d", e.Window)
  }
  return fmt.Sprintf("%s: invalid window size %d", e.Op, e.Window)
}

/* -------------------------------------------------------------------------- */

type ErrorKind int

const (
  ErrorNone ErrorKind = iota
  ErrorTransport
  ErrorRemoteRejected
  ErrorMalformedResponse
  ErrorTruncatedStream
  ErrorInvalidWindow
  ErrorOther
)

func (k ErrorKind) String() string {
  switch k {
  case ErrorNone:
    return "none"
  case ErrorTransport:
    return "transport"
  case ErrorRemoteRejected:
    return "remote rejected"
  case ErrorMalformedResponse:
    return "malformed response"
  case ErrorTruncatedStream:
    return "truncated stream"
  case ErrorInvalidWindow:
    return "invalid window"
  default:
    return "other"
  }
}

func ClassifyError(err error) ErrorKind {
  var e1 *TransportError
  var e2 *RemoteRejected
  var e3 *MalformedResponse
  var e4 *TruncatedStream
  var e5 *InvalidWindow
  switch {
  case err == nil:
    return ErrorNone
  case errors.As(err, &e1):
    return ErrorTransport
  case errors.As(err, &e2):
    return ErrorRemoteRejected
  case errors.As(err, &e3):
    return ErrorMalformedResponse
  case errors.As(err, &e4):
    return ErrorTruncatedStream
  case errors.As(err, &e5):
    return ErrorInvalidWindow
  default:
    return ErrorOther
  }
}

func IsRetryable(err error) bool {
  return ClassifyError(err) == ErrorTransport
}

func isMalformed(err error) bool {
  return ClassifyError(err) == ErrorMalformedResponse
}
