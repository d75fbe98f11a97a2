// Copyright (C) 2026 AgentMesh Project
//
// This file is part of agentauth-go.
//
// agentauth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// agentauth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with agentauth-go.  If not, see <https://www.gnu.org/licenses/>.

package crypto

import "testing"

func BenchmarkSign_ES256K(b *testing.B) {
	kp, err := GenerateSecp256k1KeyPair()
	if err != nil {
		b.Fatal(err)
	}
	message := []byte("benchmark message for signing")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := kp.Sign(message); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSign_EdDSA(b *testing.B) {
	kp, err := GenerateEd25519KeyPair()
	if err != nil {
		b.Fatal(err)
	}
	message := []byte("benchmark message for signing")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := kp.Sign(message); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerify_ES256K(b *testing.B) {
	kp, err := GenerateSecp256k1KeyPair()
	if err != nil {
		b.Fatal(err)
	}
	message := []byte("benchmark message for verification")
	sig, err := kp.Sign(message)
	if err != nil {
		b.Fatal(err)
	}
	pub := kp.PublicKey()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ok, err := Verify(AlgorithmES256K, pub, message, sig)
		if err != nil || !ok {
			b.Fatal("verification failed")
		}
	}
}

func BenchmarkVerify_EdDSA(b *testing.B) {
	kp, err := GenerateEd25519KeyPair()
	if err != nil {
		b.Fatal(err)
	}
	message := []byte("benchmark message for verification")
	sig, err := kp.Sign(message)
	if err != nil {
		b.Fatal(err)
	}
	pub := kp.PublicKey()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ok, err := Verify(AlgorithmEdDSA, pub, message, sig)
		if err != nil || !ok {
			b.Fatal("verification failed")
		}
	}
}
