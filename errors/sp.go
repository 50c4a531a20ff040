/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package errors

// Error kinds shared by every scalability-protocols package (message,
// pipe, endpoint, socket, pattern, protocol, wire, registry). Each
// package still registers its own message text via RegisterIdFctMessage,
// keyed off these codes, the same way httpserver/config register theirs.
const (
	ErrorSPTimedOut CodeError = iota + MinPkgGridMQ
	ErrorSPWouldBlock
	ErrorSPTerminated
	ErrorSPBadHandle
	ErrorSPBadState
	ErrorSPInvalidArgument
	ErrorSPNotSupported
	ErrorSPNoProtoOption
	ErrorSPAddressInUse
	ErrorSPConnectionRefused
	ErrorSPUnreachable
	ErrorSPProtoNoSupport
)

func init() {
	RegisterIdFctMessage(ErrorSPTimedOut, getSPMessage)
}

func getSPMessage(code CodeError) (message string) {
	switch code {
	case ErrorSPTimedOut:
		return "operation deadline elapsed"
	case ErrorSPWouldBlock:
		return "operation would block"
	case ErrorSPTerminated:
		return "library has been terminated"
	case ErrorSPBadHandle:
		return "socket is closed or closing"
	case ErrorSPBadState:
		return "object is not in a state that allows this operation"
	case ErrorSPInvalidArgument:
		return "malformed option value or message header"
	case ErrorSPNotSupported:
		return "operation not supported by this socket type"
	case ErrorSPNoProtoOption:
		return "unknown protocol-level option"
	case ErrorSPAddressInUse:
		return "address already in use"
	case ErrorSPConnectionRefused:
		return "connection refused"
	case ErrorSPUnreachable:
		return "destination unreachable"
	case ErrorSPProtoNoSupport:
		return "protocol not supported by peer"
	}

	return ""
}
