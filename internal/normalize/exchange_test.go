package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConvertExchanges(t *testing.T) {
	in := []string{
		"<Exchange>",
		"  <Input>",
		"    ```sh",
		"    deploy --all",
		"    ```",
		"  </Input>",
		"  <Output>",
		"    Deployed 3 services.",
		"  </Output>",
		"</Exchange>",
	}
	want := []string{
		"**Input:**",
		"```sh",
		"deploy --all",
		"```",
		"",
		"**Output:**",
		"Deployed 3 services.",
	}
	got := ConvertExchanges(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConvertExchanges() mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertExchanges_SurroundingTextUntouched(t *testing.T) {
	in := []string{
		"Before.",
		"<Exchange>",
		"  <Input>",
		"    ask something",
		"  </Input>",
		"</Exchange>",
		"After.",
	}
	want := []string{"Before.", "**Input:**", "ask something", "After."}
	got := ConvertExchanges(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConvertExchanges() mismatch (-want +got):\n%s", diff)
	}
}
