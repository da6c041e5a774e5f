package module

import "testing"

func TestViewerSignedIn(t *testing.T) {
	t.Parallel()

	if (Viewer{}).SignedIn() {
		t.Fatal("zero viewer should not be signed in")
	}
	if !(Viewer{UserID: "user-1"}).SignedIn() {
		t.Fatal("viewer with user id should be signed in")
	}
}
