package searchcmder

import (
	"strings"
	"testing"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSearchCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Search Command Suite")
}

var _ = Describe("NewSearchCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := NewSearchCmd()
		Expect(cmd.Use).To(Equal("search <query>"))
	})

	It("requires exactly one positional argument", func() {
		cmd := NewSearchCmd()
		cmd.SetArgs([]string{})
		Expect(cmd.Execute()).To(HaveOccurred())
	})

	It("has filter and output flags", func() {
		cmd := NewSearchCmd()
		for _, name := range []string{"top", "score-threshold", "brand", "category", "price-min", "price-max", "json"} {
			Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), "missing flag %s", name)
		}
	})

	It("has vector store connection flags", func() {
		cmd := NewSearchCmd()
		host := cmd.Flags().Lookup("vector-host")
		Expect(host).NotTo(BeNil())
		Expect(host.DefValue).To(Equal("localhost"))

		port := cmd.Flags().Lookup("vector-port")
		Expect(port).NotTo(BeNil())
		Expect(port.DefValue).To(Equal("6334"))
	})
})

var _ = Describe("truncate", func() {
	It("leaves short strings untouched", func() {
		Expect(truncate("red dress", 100)).To(Equal("red dress"))
	})

	It("shortens long strings with an ellipsis", func() {
		long := strings.Repeat("a", 150)
		got := truncate(long, 100)
		Expect(got).To(HaveLen(100))
		Expect(got).To(HaveSuffix("..."))
	})

	It("never splits a multi-byte character", func() {
		long := strings.Repeat("é", 150)
		got := truncate(long, 100)
		Expect(utf8.ValidString(got)).To(BeTrue())
		Expect([]rune(got)).To(HaveLen(100))
	})
})
