package provider_test

import (
	"fmt"
	"log"
	"peermind/provider"
)

// ExampleNewProvider creates the Gemini adapter through the factory.
func ExampleNewProvider() {
	p, err := provider.NewProvider(provider.Config{
		Type:   provider.ProviderTypeGemini,
		APIKey: "example-key",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%T %s\n", p, p.GetModel())
	// Output: *provider.GeminiProvider gemini-2.0-flash
}

// ExampleNewNearAIProvider shows the NEAR AI defaults.
func ExampleNewNearAIProvider() {
	p, err := provider.NewNearAIProvider("", "example-key", "")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(p.Name())
	fmt.Println(p.GetModel())
	// Output:
	// nearai
	// fireworks::accounts/fireworks/models/mixtral-8x22b-instruct
}

// ExampleExtractReply pulls the reply text out of a Gemini response body.
func ExampleExtractReply() {
	body := []byte(`{"candidates":[{"content":{"parts":[{"text":"Hello "},{"text":"there"}]}}]}`)
	fmt.Println(provider.ExtractReply(body))
	// Output: Hello there
}

// ExampleExtractReply_unrecognized falls back to compact JSON.
func ExampleExtractReply_unrecognized() {
	body := []byte(`{
  "promptFeedback": {"blockReason": "SAFETY"}
}`)
	fmt.Println(provider.ExtractReply(body))
	// Output: {"promptFeedback":{"blockReason":"SAFETY"}}
}
