package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

// CheckOwnerWitness checks witness of the contract owner.
// It panics with ErrNotOwner message on fail.
func CheckOwnerWitness(owner []byte) {
	checkWitnessWithPanic(owner, ErrNotOwner)
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}

// AbortWithMessage calls `runtime.Log` with the passed message and aborts the
// execution. Unlike panic, abort cannot be caught by the calling contract.
func AbortWithMessage(msg string) {
	runtime.Log(msg)
	util.Abort()
}
