package diagdraw

import (
	"encoding/base64"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Renderer owns a headless Chromium instance used to rasterize diagnostic
// SVGs to PNG. Grounded on the teacher's lib/png InitPlaywright/ConvertSVG
// pair, trimmed to the one-shot conversion this package needs: no EXIF
// metadata (diagnostic renders carry no provenance requirement) and no
// animation scrubbing (diagnostic SVGs are static).
type Renderer struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewRenderer installs (if needed) and launches a headless Chromium
// instance with Chromium's own sandbox disabled (--no-sandbox). Callers
// must call Close when done.
func NewRenderer() (*Renderer, error) {
	if err := playwright.Install(&playwright.RunOptions{Verbose: false, Browsers: []string{"chromium"}}); err != nil {
		return nil, fmt.Errorf("diagdraw: install chromium: %w", err)
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("diagdraw: start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Args: []string{
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--disable-background-timer-throttling",
			"--disable-backgrounding-occluded-windows",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("diagdraw: launch chromium: %w", err)
	}
	return &Renderer{pw: pw, browser: browser}, nil
}

// Close shuts down the browser and the Playwright driver.
func (r *Renderer) Close() error {
	if err := r.browser.Close(); err != nil {
		return fmt.Errorf("diagdraw: close browser: %w", err)
	}
	if err := r.pw.Stop(); err != nil {
		return fmt.Errorf("diagdraw: stop playwright: %w", err)
	}
	return nil
}

// RasterizePNG renders svg markup in a fresh page and screenshots the
// resulting <svg> element.
func (r *Renderer) RasterizePNG(svg string) ([]byte, error) {
	context, err := r.browser.NewContext(playwright.BrowserNewContextOptions{
		DeviceScaleFactor: playwright.Float(2.0),
	})
	if err != nil {
		return nil, fmt.Errorf("diagdraw: new browser context: %w", err)
	}
	defer context.Close()

	page, err := context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("diagdraw: new page: %w", err)
	}
	defer page.Close()

	html := `<!doctype html><meta charset="utf-8">
<style>html,body{margin:0;background:#fff}</style>
` + svg
	if _, err := page.Goto("data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))); err != nil {
		return nil, fmt.Errorf("diagdraw: load diagnostic svg: %w", err)
	}
	if err := page.Locator("svg").First().WaitFor(); err != nil {
		return nil, fmt.Errorf("diagdraw: wait for svg: %w", err)
	}

	png, err := page.Locator("svg").First().Screenshot()
	if err != nil {
		return nil, fmt.Errorf("diagdraw: screenshot svg: %w", err)
	}
	return png, nil
}
