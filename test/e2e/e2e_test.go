// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package e2e

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/chrome-webext/go/manifest"
	"github.com/google/chrome-webext/go/testutil"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	slog "github.com/tebeka/selenium/log"
)

// runfiles locates the browser and the packed extension. The test is skipped
// when they are unavailable, e.g. outside of Bazel.
func runfiles(t *testing.T) (chromeDriverPath, chromePath, extensionPath string) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("browser runfiles unavailable: %v", r)
		}
	}()
	return testutil.MustRunfile("_main~chromium_dependencies~chromedriver/chromedriver_linux64/chromedriver"),
		testutil.MustRunfile("_main~chromium_dependencies~chromium/chrome-linux/chrome"),
		testutil.MustRunfile("_main/chrome-webext.zip")
}

func getElementText(wd selenium.WebDriver, id string) (string, error) {
	el, err := wd.FindElement(selenium.ByID, id)
	if err != nil {
		return "", fmt.Errorf("Failed to find element with ID %s: %w", id, err)
	}

	txt, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("Failed to get text for element with ID %s: %w", id, err)
	}

	return txt, nil
}

func elementExists(id string) selenium.Condition {
	return func(wd selenium.WebDriver) (bool, error) {
		_, err := wd.FindElement(selenium.ByID, id)
		return err == nil, nil
	}
}

func currentURLIs(url string) selenium.Condition {
	return func(wd selenium.WebDriver) (bool, error) {
		u, err := wd.CurrentURL()
		if err != nil {
			return false, err
		}
		return url == u, nil
	}
}

var logLevels = slog.Capabilities{
	slog.Browser:     slog.All,
	slog.Performance: slog.Info,
	slog.Driver:      slog.Info,
}

func dumpSeleniumLogs(t *testing.T, wd selenium.WebDriver) {
	t.Log("Dumping Selenium Logs")
	for typ := range logLevels {
		msgs, err := wd.Log(typ)
		if err != nil {
			t.Errorf("Failed to fetch logs of type %s: %v", typ, err)
		}
		for _, msg := range msgs {
			t.Logf("SeleniumLog[%s]: %s [%s] %s", typ, msg.Timestamp, msg.Level, msg.Message)
		}
	}
}

func unusedPort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port, nil
}

func dumpLog(t *testing.T, name string, r io.Reader) {
	t.Logf("Dumping log: %s", name)
	if _, err := io.Copy(os.Stderr, r); err != nil {
		t.Errorf("Failed to dump log %s: %v", name, err)
	}
}

func getElementInt(wd selenium.WebDriver, id string) (int, error) {
	txt, err := getElementText(wd, id)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(txt)
	if err != nil {
		return 0, fmt.Errorf("Failed to parse '%s' in element with ID %s as integer: %w", txt, id, err)
	}
	return n, nil
}

func TestSelfTest(t *testing.T) {
	chromeDriverPath, chromePath, extensionPath := runfiles(t)

	port, err := unusedPort()
	if err != nil {
		t.Fatalf("failed to identify unused port: %v", err)
	}

	var selOut bytes.Buffer
	opts := []selenium.ServiceOption{
		selenium.Output(&selOut),
	}
	service, err := selenium.NewChromeDriverService(chromeDriverPath, port, opts...)
	if err != nil {
		defer dumpLog(t, "SeleniumOutput", &selOut) // Selenium failed to initialize; show debug info.
		t.Fatalf("failed to start Selenium service: %v", err)
	}
	defer func() {
		if serr := service.Stop(); serr != nil {
			t.Errorf("failed to stop Selenium service: %v", serr)
		}
	}()

	caps := selenium.Capabilities{}
	caps.AddLogging(logLevels)

	t.Log("Preparing extension")
	extPath, extCleanup, err := manifest.UnpackTemp(extensionPath)
	if err != nil {
		t.Fatalf("Failed to unpack extension: %v", err)
	}
	defer extCleanup()
	extID, err := unpackedExtensionID(extPath)
	if err != nil {
		t.Fatalf("Failed to determine extension ID: %v", err)
	}

	t.Log("Configuring extension in Chrome")
	chromeCaps := chrome.Capabilities{
		Path: chromePath,
		Args: []string{
			"--no-sandbox",
			// Specific headless mode that supports extensions. See:
			//   https://bugs.chromium.org/p/chromium/issues/detail?id=706008#c36
			"--headless=chrome",
		},
	}
	if err = chromeCaps.AddUnpackedExtension(extPath); err != nil {
		t.Fatalf("failed to add extension: %v", err)
	}
	caps.AddChrome(chromeCaps)

	t.Log("Starting WebDriver")
	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", port))
	if err != nil {
		defer dumpLog(t, "SeleniumOutput", &selOut) // Selenium failed to initialize; show debug info.
		t.Fatalf("Failed to start webdriver: %v", err)
	}
	defer func() {
		if qerr := wd.Quit(); qerr != nil {
			t.Errorf("failed to quit webdriver: %v", qerr)
		}
	}()
	defer dumpSeleniumLogs(t, wd)

	t.Log("Navigating to test page")
	path := makeExtensionURL(extID, "html/options.html", selfTestQuery)
	if err = wd.Get(path.String()); err != nil {
		t.Fatalf("Failed to navigate to %s: %v", path, err)
	}

	t.Log("Waiting for navigation")
	if err = wd.WaitWithTimeout(currentURLIs(path.String()), 10*time.Second); err != nil {
		t.Fatalf("Failed to complete navigation to page: %v", err)
	}

	t.Log("Waiting for results")
	for _, id := range []string{"testCount", "failureCount", "failures"} {
		if err = wd.WaitWithTimeout(elementExists(id), 30*time.Second); err != nil {
			t.Fatalf("failed to wait for %s: %v", id, err)
		}
	}

	t.Log("Extracting test results")
	tests, err := getElementInt(wd, "testCount")
	if err != nil {
		t.Fatalf("Failed to find test count: %v", err)
	}
	count, err := getElementInt(wd, "failureCount")
	if err != nil {
		t.Fatalf("Failed to find failure count: %v", err)
	}
	failures, err := getElementText(wd, "failures")
	if err != nil {
		t.Fatalf("Failed to find failure details: %v", err)
	}

	if tests == 0 {
		t.Errorf("No self-tests ran")
	}
	if count != 0 {
		t.Errorf("Reported Failures:\n%s", failures)
	}
}
