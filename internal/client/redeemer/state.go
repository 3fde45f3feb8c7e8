// Package redeemer spends an upload credential: it resolves where to PUT,
// sends the selected file exactly once and reports a terminal status.
//
// The behavior is a pure state machine. Transition consumes a message
// (FileSelected, TransferFinished) and returns the next State and, when
// work is needed, a command for the runner (Redeemer) to execute.
package redeemer

import (
	"errors"

	"github.com/dmitrijs2005/photodrop/internal/client/models"
	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/dmitrijs2005/photodrop/internal/netx"
)

type Phase int

const (
	Idle Phase = iota
	Uploading
	Succeeded
	Failed
	// NoDestination blocks the upload control: delegated mode found no
	// upload_url in the page address.
	NoDestination
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Uploading:
		return "uploading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case NoDestination:
		return "no_destination"
	default:
		return "unknown"
	}
}

// File is the image picked by the user.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Destination is a resolved upload credential. Path is empty when a
// delegated page did not carry one.
type Destination struct {
	UploadURL string
	Path      string
	Token     string
}

type State struct {
	Phase Phase
	Mode  string
	// Destination is fixed in delegated mode. In direct mode it is the
	// credential of the latest action.
	Destination *Destination
	FileName    string

	// StatusCode is set when the storage endpoint refused the PUT.
	StatusCode int
	// Err is the cause of Failed.
	Err error
	// RecordErr reports a failed bookkeeping insert after a successful
	// transfer; it never turns Succeeded into Failed.
	RecordErr error
	Photo     *models.Photo
}

// Delegated is the starting state for a page that handed over dest. A nil
// dest blocks the redeemer for good.
func Delegated(dest *Destination) State {
	if dest == nil || dest.UploadURL == "" {
		return State{Phase: NoDestination, Mode: models.ModeDelegated}
	}
	return State{Phase: Idle, Mode: models.ModeDelegated, Destination: dest}
}

// Direct is the starting state when credentials are issued per action.
func Direct() State {
	return State{Phase: Idle, Mode: models.ModeDirect}
}

type Msg interface{ isMsg() }

// FileSelected is a user action. A nil File means the picker came back
// empty.
type FileSelected struct {
	File *File
}

// TransferFinished carries the outcome of a StartTransfer command.
type TransferFinished struct {
	Destination *Destination
	Err         error
	Photo       *models.Photo
	RecordErr   error
}

func (FileSelected) isMsg()     {}
func (TransferFinished) isMsg() {}

type Cmd interface{ isCmd() }

// StartTransfer asks the runner to PUT File. A nil Destination means a
// fresh credential has to be issued first.
type StartTransfer struct {
	File        *File
	Destination *Destination
}

// Reject reports an action that was refused without touching the state.
type Reject struct {
	Err error
}

func (StartTransfer) isCmd() {}
func (Reject) isCmd()        {}

// Transition is the only place the state changes.
func Transition(s State, m Msg) (State, Cmd) {
	switch m := m.(type) {
	case FileSelected:
		switch s.Phase {
		case NoDestination:
			return s, Reject{Err: common.ErrNoDestinationConfigured}
		case Uploading, Succeeded:
			return s, nil
		}
		if m.File == nil {
			return s, Reject{Err: common.ErrNoFileSelected}
		}

		next := State{Phase: Uploading, Mode: s.Mode, Destination: s.Destination, FileName: m.File.Name}
		cmd := StartTransfer{File: m.File}
		if s.Mode == models.ModeDelegated {
			cmd.Destination = s.Destination
		}
		return next, cmd

	case TransferFinished:
		if s.Phase != Uploading {
			return s, nil
		}

		next := State{Mode: s.Mode, Destination: s.Destination, FileName: s.FileName}
		if m.Destination != nil {
			next.Destination = m.Destination
		}
		if m.Err != nil {
			next.Phase = Failed
			next.Err = m.Err
			var se *netx.StatusError
			if errors.As(m.Err, &se) {
				next.StatusCode = se.StatusCode
			}
			return next, nil
		}

		next.Phase = Succeeded
		next.Photo = m.Photo
		next.RecordErr = m.RecordErr
		return next, nil
	}
	return s, nil
}

// Status is the line shown to the user for s.
func (s State) Status() string {
	switch s.Phase {
	case Idle:
		return "Select an image to upload."
	case NoDestination:
		return "No upload destination configured."
	case Uploading:
		return "Uploading..."
	case Succeeded:
		return "Upload successful!"
	case Failed:
		if s.Err == nil {
			return "Error uploading image."
		}
		return "Error uploading image: " + s.Err.Error()
	default:
		return ""
	}
}
