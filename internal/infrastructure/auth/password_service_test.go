package auth

import "testing"

func TestPasswordServiceHashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash() returned the plaintext")
	}

	if !svc.Verify(hash, "correct horse battery staple") {
		t.Error("Verify() rejected the correct password")
	}
	if svc.Verify(hash, "wrong password") {
		t.Error("Verify() accepted a wrong password")
	}
	if svc.Verify("not-a-bcrypt-hash", "anything") {
		t.Error("Verify() accepted a malformed hash")
	}
}
